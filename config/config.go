// Package config handles application configuration.
//
// Configuration comes from three layers, later layers overriding earlier
// ones: built-in defaults, the bedrock.conf file, and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/stonebridge-tech/bedrock/pkg/wordlist"
)

// NetworkType identifies which Bitcoin network parameters to use.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
	Regtest NetworkType = "regtest"
	Simnet  NetworkType = "simnet"
	Signet  NetworkType = "signet"
)

// Config holds runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Mnemonic wordlist language
	Language wordlist.Language `conf:"language"`

	// Logging
	Log LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.bedrock
//	macOS:   ~/Library/Application Support/Bedrock
//	Windows: %APPDATA%\Bedrock
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bedrock"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Bedrock")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Bedrock")
		}
		return filepath.Join(home, "AppData", "Roaming", "Bedrock")
	default:
		return filepath.Join(home, ".bedrock")
	}
}

// BlocksDir returns the block storage directory. All networks share one
// database; per-network separation happens via key prefixes.
func (c *Config) BlocksDir() string {
	return filepath.Join(c.DataDir, "blocks")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "bedrock.conf")
}
