package config

import "strings"

// LocalConfig holds the per-checkout defaults in .icodeploy/config.local.json.
// Keys match the viper keys so the file is read back as configuration.
type LocalConfig struct {
	Network string `json:"network,omitempty"`
	RPCURL  string `json:"rpc_url,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork ConfigKey = "network"
	ConfigKeyRPCURL  ConfigKey = "rpc_url"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyRPCURL:
		return c.RPCURL
	}
	return ""
}

// Set stores value under key; an empty value removes it
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyRPCURL:
		c.RPCURL = value
	}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyRPCURL,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	normalized := NormalizeConfigKey(key)
	for _, validKey := range ValidConfigKeys() {
		if validKey == normalized {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "rpc-url" -> "rpc_url")
func NormalizeConfigKey(key string) ConfigKey {
	return ConfigKey(strings.ReplaceAll(strings.ToLower(key), "-", "_"))
}
