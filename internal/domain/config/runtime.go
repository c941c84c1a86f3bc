package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Provider settings
	NetworkName string
	RPCURL      string   // explicit endpoint, overrides NetworkName
	Network     *Network // nil until an endpoint is resolved

	// Execution settings
	Debug          bool
	LogFile        string // empty means stderr
	NonInteractive bool
	AssumeYes      bool // skip broadcast confirmation
	NoWait         bool // return after the transaction is submitted
	Timeout        time.Duration
	PollInterval   time.Duration

	// Resolved configurations
	Project   *ProjectConfig
	Crowdsale *CrowdsaleParams
}

// Network represents a resolved provider endpoint
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId,omitempty"` // 0 means accept whatever the node reports
}
