package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

// Provider is a connected wallet-capable endpoint
type Provider interface {
	// Accounts returns the sender identities; the first one signs creation transactions
	Accounts(ctx context.Context) ([]common.Address, error)
	// Deploy submits a contract-creation transaction and streams its notifications
	Deploy(ctx context.Context, req *models.DeploymentRequest) (Subscription, error)
	// Network describes the endpoint the provider is connected to
	Network() *config.Network
	Close()
}

// Subscription delivers the notifications of one creation transaction.
// The channel is closed once a Failed or Confirmed event has been delivered,
// or after Unsubscribe. Unsubscribing stops observation only; the transaction
// itself keeps going on the network.
type Subscription interface {
	Events() <-chan models.DeploymentEvent
	Unsubscribe()
}

// ProviderLoader acquires a Provider for the configured endpoint
type ProviderLoader interface {
	Load(ctx context.Context) (Provider, error)
}

// ArtifactLoader fetches and parses a contract artifact. Single attempt, no retry.
type ArtifactLoader interface {
	Load(ctx context.Context, location string) (*models.Artifact, error)
}

// SessionRepository persists the session between user actions
type SessionRepository interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	GetPath() string
}

// ErrorDisplay renders the error region. An empty message clears it.
type ErrorDisplay interface {
	Show(message string)
}

// ConstructorEncoder coerces constructor values to the artifact's ABI types
// and returns them together with the full creation payload (bytecode + packed args)
type ConstructorEncoder interface {
	EncodeConstructor(artifact *models.Artifact, values []any) ([]any, []byte, error)
}

// BroadcastConfirmer asks the operator before a creation transaction is sent
type BroadcastConfirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// LocalConfigStore persists the per-checkout defaults
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, cfg *config.LocalConfig) error
	GetPath() string
}

// NetworkResolver turns a network name or explicit URL into an endpoint
type NetworkResolver interface {
	Networks() []string
	Resolve(networkName, rpcURL string) (*config.Network, error)
}

// NetworkSelector picks one of several configured networks
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string) (string, error)
}

// ReceiptStatus is the on-chain outcome of a creation transaction
type ReceiptStatus struct {
	Mined           bool
	Succeeded       bool
	BlockNumber     uint64
	ContractAddress string
}

// BlockchainChecker checks on-chain state of creation transactions
type BlockchainChecker interface {
	Connect(ctx context.Context, rpcURL string, chainID uint64) error
	CheckCreation(ctx context.Context, txHash string) (*ReceiptStatus, error)
}

// Progress tracking interfaces

// ExecutionStage represents a stage of a user action
type ExecutionStage string

const (
	StageConnecting ExecutionStage = "Connecting"
	StageLoading    ExecutionStage = "Loading"
	StageSubmitting ExecutionStage = "Submitting"
	StagePending    ExecutionStage = "Pending"
	StageCompleted  ExecutionStage = "Completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    ExecutionStage
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
