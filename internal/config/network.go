package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
)

// NetworkResolver resolves the provider endpoint from flags and icodeploy.toml
type NetworkResolver struct {
	project *config.ProjectConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	project := cfg.Project
	if project == nil {
		project = config.DefaultProjectConfig()
	}
	return &NetworkResolver{project: project}
}

// Networks returns the configured network names, sorted
func (r *NetworkResolver) Networks() []string {
	names := make([]string, 0, len(r.project.RpcEndpoints))
	for name := range r.project.RpcEndpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the endpoint for this run. An explicit RPC URL wins over a network name.
// With neither available the error wraps domain.ErrProviderMissing.
func (r *NetworkResolver) Resolve(networkName, rpcURL string) (*config.Network, error) {
	if rpcURL != "" {
		return &config.Network{Name: "custom", RPCURL: rpcURL}, nil
	}

	if networkName == "" {
		// A single configured endpoint needs no name
		if names := r.Networks(); len(names) == 1 {
			networkName = names[0]
		} else {
			return nil, domain.ErrProviderMissing
		}
	}

	url, ok := r.project.RpcEndpoints[networkName]
	if !ok || url == "" {
		return nil, r.notFound(networkName)
	}

	return &config.Network{
		Name:    networkName,
		RPCURL:  url,
		ChainID: r.project.ChainIDs[networkName],
	}, nil
}

func (r *NetworkResolver) notFound(networkName string) error {
	msg := fmt.Sprintf("network '%s' not found in %s [rpc_endpoints]", networkName, ProjectFile)

	matches := fuzzy.Find(networkName, r.Networks())
	if len(matches) > 0 {
		suggestions := make([]string, 0, len(matches))
		for _, m := range matches {
			suggestions = append(suggestions, m.Str)
		}
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(suggestions, ", "))
	}

	return fmt.Errorf("%w: %s", domain.ErrProviderMissing, msg)
}
