package abi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// units accepted after a number, e.g. "1666.67 ether"
var units = map[string]*big.Int{
	"wei":   big.NewInt(1),
	"gwei":  big.NewInt(1_000_000_000),
	"ether": new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil),
}

var bigIntType = reflect.TypeOf((*big.Int)(nil))

// ConstructorEncoder coerces loosely typed values (YAML, flags) to the Go types
// go-ethereum packs for each ABI input
type ConstructorEncoder struct {
	log *slog.Logger
}

// NewConstructorEncoder creates a new constructor encoder
func NewConstructorEncoder(log *slog.Logger) *ConstructorEncoder {
	return &ConstructorEncoder{log: log}
}

// EncodeConstructor returns the coerced arguments and bytecode followed by the packed arguments
func (e *ConstructorEncoder) EncodeConstructor(artifact *models.Artifact, values []any) ([]any, []byte, error) {
	inputs := artifact.ConstructorInputs()
	if len(values) != len(inputs) {
		return nil, nil, fmt.Errorf("constructor expects %d arguments (%s), got %d",
			len(inputs), strings.Join(lo.Map(inputs, func(in abi.Argument, _ int) string {
				return in.Type.String() + " " + in.Name
			}), ", "), len(values))
	}

	args := make([]any, len(inputs))
	for i, input := range inputs {
		v, err := e.Coerce(input.Type, values[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		args[i] = v
	}

	packed, err := artifact.ABI.Pack("", args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to pack constructor arguments: %w", err)
	}

	data := append(append([]byte{}, artifact.Bytecode()...), packed...)
	return args, data, nil
}

// Coerce converts value to the Go representation of typ
func (e *ConstructorEncoder) Coerce(typ abi.Type, value any) (any, error) {
	switch typ.T {
	case abi.IntTy, abi.UintTy:
		return e.coerceInt(typ, value)
	case abi.AddressTy:
		return coerceAddress(value)
	case abi.BoolTy:
		return coerceBool(value)
	case abi.StringTy:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		return s, nil
	case abi.BytesTy:
		return coerceBytes(value)
	case abi.FixedBytesTy:
		return coerceFixedBytes(typ, value)
	case abi.SliceTy, abi.ArrayTy:
		return e.coerceList(typ, value)
	default:
		return nil, fmt.Errorf("unsupported constructor type %s", typ.String())
	}
}

func (e *ConstructorEncoder) coerceList(typ abi.Type, value any) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a list, got %T", value)
	}
	if typ.T == abi.ArrayTy && rv.Len() != typ.Size {
		return nil, fmt.Errorf("expected %d elements, got %d", typ.Size, rv.Len())
	}

	var out reflect.Value
	if typ.T == abi.ArrayTy {
		out = reflect.New(typ.GetType()).Elem()
	} else {
		out = reflect.MakeSlice(typ.GetType(), rv.Len(), rv.Len())
	}

	for i := 0; i < rv.Len(); i++ {
		elem, err := e.Coerce(*typ.Elem, rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(reflect.ValueOf(elem))
	}
	return out.Interface(), nil
}

func (e *ConstructorEncoder) coerceInt(typ abi.Type, value any) (any, error) {
	r, err := toRat(value)
	if err != nil {
		return nil, err
	}

	n := RoundHalfUp(r)
	if !r.IsInt() && e.log != nil {
		e.log.Debug("rounded fractional constructor value", "value", r.FloatString(6), "rounded", n.String())
	}

	if err := checkRange(typ, n); err != nil {
		return nil, err
	}

	goType := typ.GetType()
	if goType == bigIntType {
		return n, nil
	}

	out := reflect.New(goType).Elem()
	if typ.T == abi.UintTy {
		out.SetUint(n.Uint64())
	} else {
		out.SetInt(n.Int64())
	}
	return out.Interface(), nil
}

func checkRange(typ abi.Type, n *big.Int) error {
	if typ.T == abi.UintTy {
		if n.Sign() < 0 {
			return fmt.Errorf("negative value %s for %s", n, typ.String())
		}
		if n.BitLen() > typ.Size {
			return fmt.Errorf("value %s overflows %s", n, typ.String())
		}
		return nil
	}

	limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
	minimum := new(big.Int).Neg(limit)
	if n.Cmp(minimum) < 0 || n.Cmp(limit) >= 0 {
		return fmt.Errorf("value %s overflows %s", n, typ.String())
	}
	return nil
}

// RoundHalfUp rounds to the nearest integer, halves away from zero
func RoundHalfUp(r *big.Rat) *big.Int {
	abs := new(big.Rat).Abs(r)
	abs.Add(abs, big.NewRat(1, 2))
	n := new(big.Int).Quo(abs.Num(), abs.Denom())
	if r.Sign() < 0 {
		n.Neg(n)
	}
	return n
}

// toRat parses numbers, numeric strings, hex and "<n> <unit>" amounts
func toRat(value any) (*big.Rat, error) {
	switch v := value.(type) {
	case int:
		return new(big.Rat).SetInt64(int64(v)), nil
	case int8:
		return new(big.Rat).SetInt64(int64(v)), nil
	case int16:
		return new(big.Rat).SetInt64(int64(v)), nil
	case int32:
		return new(big.Rat).SetInt64(int64(v)), nil
	case int64:
		return new(big.Rat).SetInt64(v), nil
	case uint:
		return new(big.Rat).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Rat).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Rat).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Rat).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Rat).SetUint64(v), nil
	case float32:
		return parseDecimal(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		return parseDecimal(strconv.FormatFloat(v, 'f', -1, 64))
	case *big.Int:
		return new(big.Rat).SetInt(v), nil
	case json.Number:
		return parseAmount(v.String())
	case string:
		return parseAmount(v)
	default:
		return nil, fmt.Errorf("expected a number, got %T", value)
	}
}

func parseAmount(s string) (*big.Rat, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return parseDecimal(fields[0])
	case 2:
		unit, ok := units[strings.ToLower(fields[1])]
		if !ok {
			return nil, fmt.Errorf("unknown unit %q", fields[1])
		}
		r, err := parseDecimal(fields[0])
		if err != nil {
			return nil, err
		}
		return r.Mul(r, new(big.Rat).SetInt(unit)), nil
	default:
		return nil, fmt.Errorf("invalid number %q", s)
	}
}

func parseDecimal(s string) (*big.Rat, error) {
	s = strings.ReplaceAll(s, "_", "")
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return nil, fmt.Errorf("invalid hex number %q", s)
		}
		return new(big.Rat).SetInt(n), nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return r, nil
}

func coerceAddress(value any) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, fmt.Errorf("invalid address %q", v)
		}
		return common.HexToAddress(v), nil
	default:
		return common.Address{}, fmt.Errorf("expected address, got %T", value)
	}
}

func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("expected bool, got %T", value)
	}
}

func coerceBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return hexutil.Decode(v)
	default:
		return nil, fmt.Errorf("expected hex bytes, got %T", value)
	}
}

func coerceFixedBytes(typ abi.Type, value any) (any, error) {
	raw, err := coerceBytes(value)
	if err != nil {
		return nil, err
	}
	if len(raw) > typ.Size {
		return nil, fmt.Errorf("%d bytes do not fit %s", len(raw), typ.String())
	}
	out := reflect.New(typ.GetType()).Elem()
	reflect.Copy(out, reflect.ValueOf(raw))
	return out.Interface(), nil
}

// Ensure ConstructorEncoder implements the port
var _ usecase.ConstructorEncoder = (*ConstructorEncoder)(nil)
