package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

const tokenAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

func expectDeploy(env *testEnv, step models.DeploymentStep, sub Subscription, err error) {
	env.provider.On("Accounts", mock.Anything).Return([]common.Address{testSender}, nil)
	env.provider.On("Deploy", mock.Anything, mock.MatchedBy(func(req *models.DeploymentRequest) bool {
		return req.Step == step && req.From == testSender && req.ID != ""
	})).Return(sub, err).Once()
}

func TestDeployToken_ConfirmedPopulatesCrowdsaleForm(t *testing.T) {
	env := newTestEnv(t)
	env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60, 0x60}, nil)
	sub := newChanSubscription(true, models.Pending("0xBB"), models.Confirmed("0xBB", "0xAA"))
	expectDeploy(env, models.StepToken, sub, nil)

	result, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})
	require.NoError(t, err)

	assert.Equal(t, models.StateConfirmed, result.State)
	assert.Equal(t, "0xAA", result.Address)
	assert.True(t, sub.isUnsubscribed())

	s := env.controller.Snapshot()
	assert.Equal(t, "0xBB", s.Field(models.FormPublishToken, models.FieldPublishedTx))
	assert.Equal(t, "0xAA", s.Field(models.FormPublishToken, models.FieldPublishedAddress))
	assert.Equal(t, "0xAA", s.Field(models.FormPublishCrowdsale, models.FieldTokenAddress))
	assert.Empty(t, s.Field(models.FormPublishCrowdsale, models.FieldPublishedAddress))
	assert.Empty(t, s.ErrorMsg)
	assert.False(t, env.controller.InFlight(models.StepToken))

	// Persisted as well
	assert.Equal(t, "0xAA", env.repo.saved().Field(models.FormPublishCrowdsale, models.FieldTokenAddress))
	env.provider.AssertExpectations(t)
}

func TestDeployToken_FailureShowsFirstLine(t *testing.T) {
	env := newTestEnv(t)
	env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60}, nil)
	expectDeploy(env, models.StepToken, newChanSubscription(true, models.Failed("Error: rejected\nstack trace...")), nil)

	result, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})

	var depErr *domain.DeploymentError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "Error: rejected", depErr.Message)
	assert.Equal(t, models.StateFailed, result.State)
	assert.Equal(t, "Error: rejected", env.display.last())
	assert.Equal(t, "Error: rejected", env.controller.Snapshot().ErrorMsg)

	s := env.controller.Snapshot()
	assert.Empty(t, s.Field(models.FormPublishToken, models.FieldPublishedAddress))
	assert.Empty(t, s.Field(models.FormPublishCrowdsale, models.FieldTokenAddress))
}

func TestDeployToken_RejectedSubmission(t *testing.T) {
	env := newTestEnv(t)
	env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60}, nil)
	expectDeploy(env, models.StepToken, nil, errors.New("insufficient funds for gas\nat eth_sendTransaction"))

	result, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})
	require.Error(t, err)
	assert.Equal(t, models.StateFailed, result.State)
	assert.Equal(t, "insufficient funds for gas", env.display.last())
}

func TestDeployToken_NoWaitReturnsPending(t *testing.T) {
	env := newTestEnv(t)
	env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60}, nil)
	sub := newChanSubscription(false, models.Pending("0xBB"))
	expectDeploy(env, models.StepToken, sub, nil)

	result, err := env.deployToken(nil).Execute(context.Background(), DeployParams{NoWait: true})
	require.NoError(t, err)
	assert.Equal(t, models.StatePending, result.State)
	assert.Equal(t, "0xBB", result.TxHash)
	assert.True(t, sub.isUnsubscribed())
	assert.Equal(t, "0xBB", env.controller.Snapshot().Field(models.FormPublishToken, models.FieldPublishedTx))
}

func TestDeployToken_SubscriptionClosedEarly(t *testing.T) {
	env := newTestEnv(t)
	env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60}, nil)
	expectDeploy(env, models.StepToken, newChanSubscription(true, models.Pending("0xBB")), nil)

	_, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})
	assert.ErrorContains(t, err, "closed the subscription")
}

func TestDeployToken_UnknownEventIgnored(t *testing.T) {
	env := newTestEnv(t)
	env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60}, nil)
	sub := newChanSubscription(true,
		models.ClassifyNotification(nil, "", "0xAA"),
		models.Confirmed("0xBB", "0xAA"),
	)
	expectDeploy(env, models.StepToken, sub, nil)

	result, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})
	require.NoError(t, err)
	assert.Equal(t, models.StateConfirmed, result.State)
	assert.Empty(t, env.display.last())
}

func TestDeployToken_Preconditions(t *testing.T) {
	t.Run("artifact not loaded", func(t *testing.T) {
		env := newTestEnv(t)
		env.controller.setArtifact(models.StepToken, nil)

		_, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})
		assert.ErrorIs(t, err, domain.ErrArtifactNotLoaded)
		assert.Equal(t, "contract artifact not loaded", env.display.last())
		env.provider.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
	})

	t.Run("no provider", func(t *testing.T) {
		env := newTestEnv(t)
		env.controller.Close()

		_, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})
		assert.ErrorIs(t, err, domain.ErrProviderMissing)
		assert.Equal(t, "No wallet provider found", env.display.last())
	})

	t.Run("no accounts", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.On("Accounts", mock.Anything).Return([]common.Address{}, nil)

		_, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})
		assert.ErrorIs(t, err, domain.ErrProviderMissing)
		env.provider.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
	})

	t.Run("in flight", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.controller.begin(models.StepToken))

		_, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})
		assert.ErrorIs(t, err, domain.ErrDeploymentInFlight)
		assert.Equal(t, "deployment already in progress: token", env.display.last())
		assert.True(t, env.controller.InFlight(models.StepToken))
		env.provider.AssertNotCalled(t, "Accounts", mock.Anything)
	})

	t.Run("encoding fails", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.On("Accounts", mock.Anything).Return([]common.Address{testSender}, nil)
		env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return(nil, nil, errors.New("constructor expects 0 arguments"))

		_, err := env.deployToken(nil).Execute(context.Background(), DeployParams{})
		assert.ErrorContains(t, err, "failed to encode NigamCoin constructor")
		env.provider.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
	})
}

func TestDeployToken_Confirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.On("Accounts", mock.Anything).Return([]common.Address{testSender}, nil)
		env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60}, nil)

		var prompt string
		decline := confirmFunc(func(ctx context.Context, p string) (bool, error) {
			prompt = p
			return false, nil
		})

		_, err := env.deployToken(decline).Execute(context.Background(), DeployParams{})
		assert.ErrorIs(t, err, domain.ErrCancelled)
		assert.Contains(t, prompt, "Publish NigamCoin from "+testSender.Hex()+" on local")
		env.provider.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
		assert.False(t, env.controller.InFlight(models.StepToken))
	})

	t.Run("assume yes skips the prompt", func(t *testing.T) {
		env := newTestEnv(t)
		env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60}, nil)
		expectDeploy(env, models.StepToken, newChanSubscription(true, models.Confirmed("0xBB", "0xAA")), nil)

		never := confirmFunc(func(ctx context.Context, p string) (bool, error) {
			t.Fatal("prompted")
			return false, nil
		})

		_, err := env.deployToken(never).Execute(context.Background(), DeployParams{AssumeYes: true})
		require.NoError(t, err)
	})
}

func TestDeployCrowdsale_UsesFormTokenAddress(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.controller.Update(context.Background(), func(s *models.Session) error {
		if err := s.SetField(models.FormPublishToken, models.FieldPublishedAddress, tokenAddr); err != nil {
			return err
		}
		return s.SetField(models.FormPublishCrowdsale, models.FieldTokenAddress, tokenAddr)
	}))

	env.encoder.On("EncodeConstructor", env.crowdsale, []any{tokenAddr, 50}).Return([]any{}, []byte{0x60, 0x61}, nil)
	expectDeploy(env, models.StepCrowdsale, newChanSubscription(true, models.Pending("0xCC"), models.Confirmed("0xCC", "0xDD")), nil)

	result, err := env.deployCrowdsale(nil).Execute(context.Background(), DeployCrowdsaleParams{})
	require.NoError(t, err)
	assert.Equal(t, models.StateConfirmed, result.State)

	s := env.controller.Snapshot()
	assert.Equal(t, "0xDD", s.Field(models.FormPublishCrowdsale, models.FieldPublishedAddress))
	assert.Equal(t, "0xCC", s.Field(models.FormPublishCrowdsale, models.FieldPublishedTx))
	assert.Equal(t, tokenAddr, s.Field(models.FormPublishCrowdsale, models.FieldTokenAddress))

	// The token form is not touched
	assert.Equal(t, tokenAddr, s.Field(models.FormPublishToken, models.FieldPublishedAddress))
	assert.Empty(t, s.Field(models.FormPublishToken, models.FieldPublishedTx))
	env.encoder.AssertExpectations(t)
}

func TestDeployCrowdsale_TokenAddressParam(t *testing.T) {
	env := newTestEnv(t)
	env.encoder.On("EncodeConstructor", env.crowdsale, []any{tokenAddr, 50}).Return([]any{}, []byte{0x60}, nil)
	expectDeploy(env, models.StepCrowdsale, newChanSubscription(true, models.Confirmed("0xCC", "0xDD")), nil)

	_, err := env.deployCrowdsale(nil).Execute(context.Background(), DeployCrowdsaleParams{TokenAddress: tokenAddr})
	require.NoError(t, err)
	assert.Equal(t, tokenAddr, env.controller.Snapshot().Field(models.FormPublishCrowdsale, models.FieldTokenAddress))
}

func TestDeployCrowdsale_InvalidTokenAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr error
	}{
		{"missing", "", domain.ErrTokenAddressMissing},
		{"malformed", "0x123", domain.ErrInvalidAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			require.NoError(t, env.controller.Update(context.Background(), func(s *models.Session) error {
				return s.SetField(models.FormPublishCrowdsale, models.FieldTokenAddress, tt.address)
			}))

			_, err := env.deployCrowdsale(nil).Execute(context.Background(), DeployCrowdsaleParams{})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, err.Error(), env.display.last())
			env.provider.AssertNotCalled(t, "Accounts", mock.Anything)
			env.provider.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
			env.encoder.AssertNotCalled(t, "EncodeConstructor", mock.Anything, mock.Anything)
		})
	}
}

func TestDeploy_StepsAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.controller.begin(models.StepToken))
	defer env.controller.end(models.StepToken)

	env.encoder.On("EncodeConstructor", env.crowdsale, mock.Anything).Return([]any{}, []byte{0x60}, nil)
	expectDeploy(env, models.StepCrowdsale, newChanSubscription(true, models.Confirmed("0xCC", "0xDD")), nil)

	_, err := env.deployCrowdsale(nil).Execute(context.Background(), DeployCrowdsaleParams{TokenAddress: tokenAddr})
	require.NoError(t, err)
}

func TestDeployToken_ReloadWhileInFlight(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	network := &config.Network{Name: "local", RPCURL: "http://127.0.0.1:8545", ChainID: 31337}

	first := &mockProvider{}
	first.On("Network").Return(network).Maybe()
	first.On("Accounts", mock.Anything).Return([]common.Address{testSender}, nil)
	sub := newChanSubscription(false)
	first.On("Deploy", mock.Anything, mock.Anything).Return(sub, nil).Once()
	env.controller.setProvider(first)
	env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60}, nil)

	type outcome struct {
		result *models.DeploymentResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := env.deployToken(nil).Execute(ctx, DeployParams{})
		done <- outcome{result, err}
	}()

	sub.ch <- models.Pending("0xBB")
	require.Eventually(t, func() bool {
		return env.controller.Snapshot().Field(models.FormPublishToken, models.FieldPublishedTx) == "0xBB"
	}, time.Second, 5*time.Millisecond)

	// Loading again acquires a fresh provider while the token is still pending
	next := &mockProvider{}
	next.On("Network").Return(network).Maybe()
	providers := &mockProviderLoader{}
	providers.On("Load", mock.Anything).Return(next, nil)
	artifacts := &mockArtifactLoader{}
	artifacts.On("Load", mock.Anything, config.DefaultTokenArtifact).Return(env.token, nil)
	artifacts.On("Load", mock.Anything, config.DefaultCrowdsaleArtifact).Return(env.crowdsale, nil)

	_, err := newLoadContracts(env, providers, artifacts).Execute(ctx)
	require.NoError(t, err)
	assert.Same(t, next, env.controller.Provider())
	first.AssertNotCalled(t, "Close")
	assert.Equal(t, models.StatePending, env.controller.Snapshot().Results[models.StepToken].State)
	assert.Empty(t, env.controller.Snapshot().ErrorMsg)

	// The deployment finishes on the provider it was submitted to
	first.On("Close").Once()
	sub.ch <- models.Confirmed("0xBB", tokenAddr)

	var out outcome
	select {
	case out = <-done:
	case <-time.After(time.Second):
		t.Fatal("deployment did not finish")
	}
	require.NoError(t, out.err)
	assert.Equal(t, models.StateConfirmed, out.result.State)
	assert.Equal(t, tokenAddr, env.controller.Snapshot().Field(models.FormPublishCrowdsale, models.FieldTokenAddress))
	assert.Empty(t, env.controller.Snapshot().ErrorMsg)

	first.AssertExpectations(t)
	next.AssertNotCalled(t, "Close")
}

func TestDeploy_ContinuationErrorSkipsPersist(t *testing.T) {
	env := newTestEnv(t)
	env.encoder.On("EncodeConstructor", env.token, mock.Anything).Return([]any{}, []byte{0x60}, nil)
	expectDeploy(env, models.StepToken, newChanSubscription(true, models.Pending("0xBB"), models.Confirmed("0xBB", "0xAA")), nil)

	target := deployTarget{
		step: models.StepToken,
		form: models.FormPublishToken,
		onConfirmed: func(s *models.Session, result *models.DeploymentResult) error {
			return s.SetField("missingForm", models.FieldTokenAddress, result.Address)
		},
	}
	_, err := env.deployToken(nil).deploy(context.Background(), target, env.token, nil, DeployParams{})
	require.NoError(t, err)

	// The confirmed update failed, so the last persisted state is still pending
	saved := env.repo.saved()
	assert.Equal(t, models.StatePending, saved.Results[models.StepToken].State)
	assert.Empty(t, saved.Field(models.FormPublishToken, models.FieldPublishedAddress))
}

func TestPopulateTokenAddress(t *testing.T) {
	s := models.NewSession()
	require.NoError(t, populateTokenAddress(s, &models.DeploymentResult{Address: tokenAddr}))
	assert.Equal(t, tokenAddr, s.Field(models.FormPublishCrowdsale, models.FieldTokenAddress))
}
