package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for deployment operations
var (
	// ErrProviderMissing is returned when no wallet provider can be acquired
	ErrProviderMissing = errors.New("no wallet provider found")

	// ErrArtifactLoad is matched by every ArtifactLoadError
	ErrArtifactLoad = errors.New("artifact load failed")

	// ErrArtifactNotLoaded is returned when a step runs before its artifact is available
	ErrArtifactNotLoaded = errors.New("contract artifact not loaded")

	// ErrTokenAddressMissing is returned when the crowdsale step has no token address
	ErrTokenAddressMissing = errors.New("token address is required")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrDeploymentInFlight is returned when a step already has an outstanding request
	ErrDeploymentInFlight = errors.New("deployment already in progress")

	// ErrUnexpectedContractState is logged when a notification carries no transaction hash
	ErrUnexpectedContractState = errors.New("unexpected contract state")

	// ErrTerminalState is returned when an event arrives after Confirmed or Failed
	ErrTerminalState = errors.New("deployment already finished")

	// ErrUnknownFormField is returned for form or field names the session does not have
	ErrUnknownFormField = errors.New("unknown form field")

	// ErrCancelled is returned when the operator declines a broadcast
	ErrCancelled = errors.New("cancelled")
)

// ArtifactLoadError reports a failed artifact fetch or parse
type ArtifactLoadError struct {
	Location string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("failed to load artifact %s: %v", e.Location, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}

func (e *ArtifactLoadError) Is(target error) bool {
	return target == ErrArtifactLoad
}

// DeploymentError is a provider-reported failure of a creation transaction.
// Message holds only the first line of the provider's message.
type DeploymentError struct {
	Message string
}

func (e *DeploymentError) Error() string {
	return e.Message
}

// FirstLine returns msg up to, not including, the first line break.
// A message without a line break is returned whole.
func FirstLine(msg string) string {
	if idx := strings.IndexAny(msg, "\r\n"); idx != -1 {
		return msg[:idx]
	}
	return msg
}
