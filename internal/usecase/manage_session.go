package usecase

import (
	"context"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

// ManageSession covers the session lifecycle and direct form edits
type ManageSession struct {
	controller *Controller
}

// NewManageSession creates a new manage session use case
func NewManageSession(controller *Controller) *ManageSession {
	return &ManageSession{controller: controller}
}

// SessionView is the session document plus the runtime state the CLI shows
type SessionView struct {
	Session         *models.Session
	TokenLoaded     bool
	CrowdsaleLoaded bool
	InFlight        map[models.DeploymentStep]bool
}

// Show returns the current session
func (m *ManageSession) Show(ctx context.Context) *SessionView {
	token, crowdsale := m.controller.Artifacts()
	return &SessionView{
		Session:         m.controller.Snapshot(),
		TokenLoaded:     token != nil,
		CrowdsaleLoaded: crowdsale != nil,
		InFlight: map[models.DeploymentStep]bool{
			models.StepToken:     m.controller.InFlight(models.StepToken),
			models.StepCrowdsale: m.controller.InFlight(models.StepCrowdsale),
		},
	}
}

// SetField writes form.field; unknown names are rejected
func (m *ManageSession) SetField(ctx context.Context, form, field, value string) error {
	return m.controller.Update(ctx, func(s *models.Session) error {
		return s.SetField(form, field, value)
	})
}

// ClearError empties the error region
func (m *ManageSession) ClearError(ctx context.Context) {
	m.controller.PrintError(ctx, "")
}

// Reset starts a fresh session
func (m *ManageSession) Reset(ctx context.Context) error {
	return m.controller.Reset(ctx)
}
