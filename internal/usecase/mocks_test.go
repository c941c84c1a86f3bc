package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]common.Address)
	return accounts, args.Error(1)
}

func (m *mockProvider) Deploy(ctx context.Context, req *models.DeploymentRequest) (Subscription, error) {
	args := m.Called(ctx, req)
	sub, _ := args.Get(0).(Subscription)
	return sub, args.Error(1)
}

func (m *mockProvider) Network() *config.Network {
	args := m.Called()
	network, _ := args.Get(0).(*config.Network)
	return network
}

func (m *mockProvider) Close() {
	m.Called()
}

type mockProviderLoader struct {
	mock.Mock
}

func (m *mockProviderLoader) Load(ctx context.Context) (Provider, error) {
	args := m.Called(ctx)
	provider, _ := args.Get(0).(Provider)
	return provider, args.Error(1)
}

type mockArtifactLoader struct {
	mock.Mock
}

func (m *mockArtifactLoader) Load(ctx context.Context, location string) (*models.Artifact, error) {
	args := m.Called(ctx, location)
	artifact, _ := args.Get(0).(*models.Artifact)
	return artifact, args.Error(1)
}

type mockEncoder struct {
	mock.Mock
}

func (m *mockEncoder) EncodeConstructor(artifact *models.Artifact, values []any) ([]any, []byte, error) {
	args := m.Called(artifact, values)
	coerced, _ := args.Get(0).([]any)
	data, _ := args.Get(1).([]byte)
	return coerced, data, args.Error(2)
}

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	return m.Called(ctx, rpcURL, chainID).Error(0)
}

func (m *mockChecker) CheckCreation(ctx context.Context, txHash string) (*ReceiptStatus, error) {
	args := m.Called(ctx, txHash)
	status, _ := args.Get(0).(*ReceiptStatus)
	return status, args.Error(1)
}

// memRepo keeps the session in memory
type memRepo struct {
	mu      sync.Mutex
	session *models.Session
	loadErr error
	saves   int
}

func (r *memRepo) Load(ctx context.Context) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.session == nil {
		return models.NewSession(), nil
	}
	return r.session, nil
}

func (r *memRepo) Save(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = session
	r.saves++
	return nil
}

func (r *memRepo) GetPath() string { return "memory" }

func (r *memRepo) saved() *models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// recordingDisplay keeps every message shown in the error region
type recordingDisplay struct {
	mu       sync.Mutex
	messages []string
}

func (d *recordingDisplay) Show(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, message)
}

func (d *recordingDisplay) last() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.messages) == 0 {
		return ""
	}
	return d.messages[len(d.messages)-1]
}

// chanSubscription replays queued events; closed controls whether the channel ends
type chanSubscription struct {
	ch           chan models.DeploymentEvent
	mu           sync.Mutex
	unsubscribed bool
}

func newChanSubscription(closed bool, events ...models.DeploymentEvent) *chanSubscription {
	ch := make(chan models.DeploymentEvent, len(events))
	for _, e := range events {
		ch <- e
	}
	if closed {
		close(ch)
	}
	return &chanSubscription{ch: ch}
}

func (s *chanSubscription) Events() <-chan models.DeploymentEvent { return s.ch }

func (s *chanSubscription) Unsubscribe() {
	s.mu.Lock()
	s.unsubscribed = true
	s.mu.Unlock()
}

func (s *chanSubscription) isUnsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}

type confirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f confirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	cfg        *config.RuntimeConfig
	controller *Controller
	repo       *memRepo
	display    *recordingDisplay
	provider   *mockProvider
	encoder    *mockEncoder
	token      *models.Artifact
	crowdsale  *models.Artifact
}

var testSender = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

// newTestEnv returns a controller with a provider and both artifacts in place
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		cfg: &config.RuntimeConfig{
			Project:   config.DefaultProjectConfig(),
			Crowdsale: &config.CrowdsaleParams{Args: []config.ConstructorArg{{Name: "_ownersPercent", Value: 50}}},
		},
		repo:      &memRepo{},
		display:   &recordingDisplay{},
		provider:  &mockProvider{},
		encoder:   &mockEncoder{},
		token:     &models.Artifact{ContractName: "NigamCoin", UnlinkedBinary: "0x6060"},
		crowdsale: &models.Artifact{ContractName: "NigamCrowdsale", UnlinkedBinary: "0x6061"},
	}
	env.controller = NewController(env.repo, env.display, discardLogger())
	require.NoError(t, env.controller.Init(context.Background()))

	env.provider.On("Close").Maybe()
	env.provider.On("Network").Return(&config.Network{Name: "local", RPCURL: "http://127.0.0.1:8545", ChainID: 31337}).Maybe()
	env.controller.setProvider(env.provider)
	env.controller.setArtifact(models.StepToken, env.token)
	env.controller.setArtifact(models.StepCrowdsale, env.crowdsale)

	return env
}

func (e *testEnv) deployToken(confirmer BroadcastConfirmer) *DeployToken {
	return NewDeployToken(e.cfg, e.controller, e.encoder, confirmer, NopProgress{}, discardLogger())
}

func (e *testEnv) deployCrowdsale(confirmer BroadcastConfirmer) *DeployCrowdsale {
	return NewDeployCrowdsale(e.cfg, e.controller, e.encoder, confirmer, NopProgress{}, discardLogger())
}
