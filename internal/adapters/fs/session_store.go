package fs

import (
	"context"
	"path/filepath"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// SessionStoreAdapter implements SessionRepository using the file system
type SessionStoreAdapter struct {
	doc document
}

// NewSessionStoreAdapter creates a new SessionStoreAdapter
func NewSessionStoreAdapter(cfg *config.RuntimeConfig) *SessionStoreAdapter {
	return &SessionStoreAdapter{
		doc: document{path: filepath.Join(cfg.DataDir, "session.json"), kind: "session"},
	}
}

// Exists checks if the session file exists
func (s *SessionStoreAdapter) Exists() bool {
	return s.doc.exists()
}

// Load reads the session from the file; a missing file starts a new session
func (s *SessionStoreAdapter) Load(ctx context.Context) (*models.Session, error) {
	var session models.Session
	found, err := s.doc.read(&session)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.NewSession(), nil
	}

	// Fill in any forms added since the file was written
	session.Normalize()

	return &session, nil
}

// Save writes the session to the file
func (s *SessionStoreAdapter) Save(ctx context.Context, session *models.Session) error {
	return s.doc.write(session)
}

// GetPath returns the path to the session file
func (s *SessionStoreAdapter) GetPath() string {
	return s.doc.path
}

// Ensure SessionStoreAdapter implements SessionRepository
var _ usecase.SessionRepository = (*SessionStoreAdapter)(nil)
