package config

import (
	"fmt"

	"github.com/stonebridge-tech/bedrock/pkg/wordlist"
)

// Validate checks runtime config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, err := Params(cfg.Network); err != nil {
		return err
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	if _, err := wordlist.ForLanguage(cfg.Language); err != nil {
		return err
	}

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}

	return nil
}
