package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ArtifactFile represents the raw Truffle artifact JSON.
// Newer Truffle releases write contractName/bytecode instead of the legacy keys.
type ArtifactFile struct {
	ABI            json.RawMessage `json:"abi"`
	UnlinkedBinary string          `json:"unlinked_binary"`
	ContractName   string          `json:"contract_name"`
	Bytecode       string          `json:"bytecode,omitempty"`
	NewName        string          `json:"contractName,omitempty"`
}

// Artifact is a loaded, parsed contract descriptor. It is never mutated after load.
type Artifact struct {
	ContractName   string          `json:"contractName"`
	RawABI         json.RawMessage `json:"abi"`
	ABI            abi.ABI         `json:"-"`
	UnlinkedBinary string          `json:"unlinkedBinary"`
	Source         string          `json:"source"`
	LoadedAt       time.Time       `json:"loadedAt"`
}

// Bytecode decodes the unlinked binary into raw bytes
func (a *Artifact) Bytecode() []byte {
	return common.FromHex(strings.TrimSpace(a.UnlinkedBinary))
}

// ConstructorInputs returns the constructor's ordered inputs, empty when the ABI has none
func (a *Artifact) ConstructorInputs() abi.Arguments {
	return a.ABI.Constructor.Inputs
}
