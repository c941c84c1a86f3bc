package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
)

// LoadProjectConfig loads icodeploy.toml from the project root, applying defaults
// for anything the file leaves out. A missing file is not an error.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	cfg := config.DefaultProjectConfig()

	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		var raw config.ProjectConfig
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
		mergeProjectConfig(cfg, &raw)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Expand ${VAR} references after .env files are loaded
	for name, url := range cfg.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}
	cfg.Sender.PrivateKey = os.ExpandEnv(cfg.Sender.PrivateKey)
	cfg.Artifacts.BaseURL = os.ExpandEnv(cfg.Artifacts.BaseURL)

	return cfg, nil
}

// loadEnvFiles loads .env and .env.local without overriding variables already set
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

func mergeProjectConfig(dst, src *config.ProjectConfig) {
	if src.Artifacts.Token != "" {
		dst.Artifacts.Token = src.Artifacts.Token
	}
	if src.Artifacts.Crowdsale != "" {
		dst.Artifacts.Crowdsale = src.Artifacts.Crowdsale
	}
	dst.Artifacts.BaseURL = src.Artifacts.BaseURL

	for name, url := range src.RpcEndpoints {
		dst.RpcEndpoints[name] = url
	}
	for name, id := range src.ChainIDs {
		dst.ChainIDs[name] = id
	}

	dst.Sender = src.Sender

	if src.Crowdsale.Params != "" {
		dst.Crowdsale.Params = src.Crowdsale.Params
	}
}
