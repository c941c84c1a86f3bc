package config

// Default artifact locations, relative to the project root
const (
	DefaultTokenArtifact     = "./build/contracts/NigamCoin.json"
	DefaultCrowdsaleArtifact = "./build/contracts/NigamCrowdsale.json"
	DefaultCrowdsaleParams   = "crowdsale.yaml"
)

// ProjectConfig represents icodeploy.toml
type ProjectConfig struct {
	Artifacts    ArtifactsConfig   `toml:"artifacts"`
	RpcEndpoints map[string]string `toml:"rpc_endpoints"`
	ChainIDs     map[string]uint64 `toml:"chain_ids,omitempty"`
	Sender       SenderConfig      `toml:"sender"`
	Crowdsale    CrowdsaleConfig   `toml:"crowdsale"`
}

// ArtifactsConfig locates the two compiled artifacts
type ArtifactsConfig struct {
	Token     string `toml:"token,omitempty"`
	Crowdsale string `toml:"crowdsale,omitempty"`
	// BaseURL, when set, makes relative artifact paths resolve over HTTP
	BaseURL string `toml:"base_url,omitempty"`
}

// SenderConfig selects how creation transactions are signed.
// An empty PrivateKey means the node's own unlocked accounts are used.
type SenderConfig struct {
	PrivateKey string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	GasLimit   uint64 `toml:"gas_limit,omitempty"`
}

// CrowdsaleConfig points at the crowdsale constructor parameters file
type CrowdsaleConfig struct {
	Params string `toml:"params,omitempty"`
}

// DefaultProjectConfig returns the configuration used when no icodeploy.toml exists
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Artifacts: ArtifactsConfig{
			Token:     DefaultTokenArtifact,
			Crowdsale: DefaultCrowdsaleArtifact,
		},
		RpcEndpoints: map[string]string{},
		ChainIDs:     map[string]uint64{},
		Crowdsale: CrowdsaleConfig{
			Params: DefaultCrowdsaleParams,
		},
	}
}

// CrowdsaleParams holds the crowdsale constructor arguments that follow the token address
type CrowdsaleParams struct {
	Args []ConstructorArg `yaml:"args"`
}

// ConstructorArg is one named constructor value. Value is coerced to the ABI input type.
type ConstructorArg struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// Values returns the argument values in order
func (p *CrowdsaleParams) Values() []any {
	if p == nil {
		return nil
	}
	values := make([]any, len(p.Args))
	for i, arg := range p.Args {
		values[i] = arg.Value
	}
	return values
}
