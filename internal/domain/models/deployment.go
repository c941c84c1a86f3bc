package models

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
)

// DeploymentStep identifies which of the two contracts a request deploys
type DeploymentStep string

const (
	StepToken     DeploymentStep = "token"
	StepCrowdsale DeploymentStep = "crowdsale"
)

// DeploymentState is the lifecycle state of a single deployment
type DeploymentState string

const (
	StateIdle      DeploymentState = "IDLE"
	StateSubmitted DeploymentState = "SUBMITTED"
	StatePending   DeploymentState = "PENDING"
	StateConfirmed DeploymentState = "CONFIRMED"
	StateFailed    DeploymentState = "FAILED"
)

// IsTerminal reports whether no further transitions are allowed
func (s DeploymentState) IsTerminal() bool {
	return s == StateConfirmed || s == StateFailed
}

// DeploymentRequest is assembled per user action and consumed by the provider
type DeploymentRequest struct {
	ID              string
	Step            DeploymentStep
	Artifact        *Artifact
	ConstructorArgs []any
	From            common.Address
	Data            []byte
}

// EventKind tags a DeploymentEvent
type EventKind int

const (
	EventUnknown EventKind = iota
	EventFailed
	EventPending
	EventConfirmed
)

func (k EventKind) String() string {
	switch k {
	case EventFailed:
		return "failed"
	case EventPending:
		return "pending"
	case EventConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// DeploymentEvent is one provider notification about a creation transaction
type DeploymentEvent struct {
	Kind    EventKind
	TxHash  string
	Address string
	Message string
}

// Failed creates a failure event
func Failed(message string) DeploymentEvent {
	return DeploymentEvent{Kind: EventFailed, Message: message}
}

// Pending creates a transaction-submitted event
func Pending(txHash string) DeploymentEvent {
	return DeploymentEvent{Kind: EventPending, TxHash: txHash}
}

// Confirmed creates a contract-mined event
func Confirmed(txHash, address string) DeploymentEvent {
	return DeploymentEvent{Kind: EventConfirmed, TxHash: txHash, Address: address}
}

// ClassifyNotification maps a raw (error, transaction hash, address) notification to an event.
// An error always wins; a notification without a transaction hash is EventUnknown.
func ClassifyNotification(err error, txHash, address string) DeploymentEvent {
	switch {
	case err != nil:
		return Failed(err.Error())
	case txHash == "":
		return DeploymentEvent{Kind: EventUnknown, Address: address}
	case address == "":
		return Pending(txHash)
	default:
		return Confirmed(txHash, address)
	}
}

// DeploymentResult tracks one request from submission to its terminal state
type DeploymentResult struct {
	RequestID    string          `json:"requestId"`
	Step         DeploymentStep  `json:"step"`
	ContractName string          `json:"contractName"`
	State        DeploymentState `json:"state"`
	TxHash       string          `json:"txHash,omitempty"`
	Address      string          `json:"address,omitempty"`
	Error        string          `json:"error,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NewDeploymentResult creates an Idle result for a request
func NewDeploymentResult(req *DeploymentRequest) *DeploymentResult {
	now := time.Now()
	result := &DeploymentResult{
		RequestID: req.ID,
		Step:      req.Step,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Artifact != nil {
		result.ContractName = req.Artifact.ContractName
	}
	return result
}

// MarkSubmitted moves an Idle result to Submitted
func (r *DeploymentResult) MarkSubmitted() error {
	if r.State != StateIdle {
		return fmt.Errorf("cannot submit deployment in state %s", r.State)
	}
	r.State = StateSubmitted
	r.UpdatedAt = time.Now()
	return nil
}

// Apply advances the result with an event. Unknown events leave it unchanged.
func (r *DeploymentResult) Apply(event DeploymentEvent) error {
	if r.State.IsTerminal() {
		return domain.ErrTerminalState
	}

	switch event.Kind {
	case EventFailed:
		r.State = StateFailed
		r.Error = domain.FirstLine(event.Message)
	case EventPending:
		r.State = StatePending
		r.TxHash = event.TxHash
	case EventConfirmed:
		r.State = StateConfirmed
		r.TxHash = event.TxHash
		r.Address = event.Address
	default:
		return domain.ErrUnexpectedContractState
	}

	r.UpdatedAt = time.Now()
	return nil
}
