package fs

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// LocalConfigStoreAdapter keeps the per-checkout network and rpc_url defaults
// next to the session, where viper reads them back as configuration
type LocalConfigStoreAdapter struct {
	doc document
}

// NewLocalConfigStoreAdapter creates a new LocalConfigStoreAdapter
func NewLocalConfigStoreAdapter(cfg *config.RuntimeConfig) *LocalConfigStoreAdapter {
	return &LocalConfigStoreAdapter{
		doc: document{path: filepath.Join(cfg.DataDir, "config.local.json"), kind: "config"},
	}
}

// Exists checks if the config file exists
func (s *LocalConfigStoreAdapter) Exists() bool {
	return s.doc.exists()
}

// Load reads the defaults; a missing file yields an empty config
func (s *LocalConfigStoreAdapter) Load(ctx context.Context) (*config.LocalConfig, error) {
	cfg := config.DefaultLocalConfig()
	if _, err := s.doc.read(cfg); err != nil {
		return nil, err
	}
	// Hand-edited files may carry stray whitespace
	cfg.Network = strings.TrimSpace(cfg.Network)
	cfg.RPCURL = strings.TrimSpace(cfg.RPCURL)
	return cfg, nil
}

// Save writes the defaults
func (s *LocalConfigStoreAdapter) Save(ctx context.Context, cfg *config.LocalConfig) error {
	return s.doc.write(cfg)
}

// GetPath returns the path to the config file
func (s *LocalConfigStoreAdapter) GetPath() string {
	return s.doc.path
}

// Ensure LocalConfigStoreAdapter implements LocalConfigStore
var _ usecase.LocalConfigStore = (*LocalConfigStoreAdapter)(nil)
