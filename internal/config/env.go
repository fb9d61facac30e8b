package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override, e.g. SUBTRANSFER_LOG_LEVEL.
const EnvPrefix = "SUBTRANSFER_"

// applyEnv overlays SUBTRANSFER_* variables onto c. Unset variables leave
// the file or default value in place.
func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
