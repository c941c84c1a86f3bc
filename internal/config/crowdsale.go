package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
)

//go:embed crowdsale_defaults.yaml
var defaultCrowdsaleParams []byte

// LoadCrowdsaleParams reads the crowdsale constructor arguments. When the file does not
// exist the built-in sale schedule is returned.
func LoadCrowdsaleParams(projectRoot, path string) (*config.CrowdsaleParams, error) {
	if path == "" {
		return DefaultCrowdsaleParams()
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectRoot, path)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultCrowdsaleParams()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return ParseCrowdsaleParams(data)
}

// DefaultCrowdsaleParams returns the built-in sale schedule
func DefaultCrowdsaleParams() (*config.CrowdsaleParams, error) {
	return ParseCrowdsaleParams(defaultCrowdsaleParams)
}

// ParseCrowdsaleParams decodes a crowdsale parameters document
func ParseCrowdsaleParams(data []byte) (*config.CrowdsaleParams, error) {
	var params config.CrowdsaleParams
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse crowdsale parameters: %w", err)
	}

	for i, arg := range params.Args {
		if arg.Value == nil {
			return nil, fmt.Errorf("crowdsale argument %d (%s) has no value", i, arg.Name)
		}
	}

	return &params, nil
}
