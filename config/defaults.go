package config

import "github.com/stonebridge-tech/bedrock/pkg/wordlist"

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network:  Mainnet,
		DataDir:  DefaultDataDir(),
		Language: wordlist.English,
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	cfg := DefaultMainnet()
	if network != "" {
		cfg.Network = network
	}
	return cfg
}
