package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/joeshaw/envdecode"
)

// EnvConfig holds the PORTAL_CLI_* variables. Embedded stays a string so an
// unset variable can be told apart from an explicit "false".
type EnvConfig struct {
	ServerEndpointAddr  string        `env:"PORTAL_CLI_SERVER_ADDR"`
	SessionPollInterval time.Duration `env:"PORTAL_CLI_POLL_INTERVAL"`
	RequestTimeout      time.Duration `env:"PORTAL_CLI_REQUEST_TIMEOUT"`
	Embedded            string        `env:"PORTAL_CLI_EMBEDDED"`
}

// parseEnv overlays cfg with PORTAL_CLI_* variables. Malformed values panic.
func parseEnv(cfg *Config) {
	var c EnvConfig
	if err := envdecode.Decode(&c); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	if c.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.SessionPollInterval > 0 {
		cfg.SessionPollInterval = c.SessionPollInterval
	}
	if c.RequestTimeout > 0 {
		cfg.RequestTimeout = c.RequestTimeout
	}
	if c.Embedded != "" {
		embedded, err := strconv.ParseBool(c.Embedded)
		if err != nil {
			panic(fmt.Errorf("PORTAL_CLI_EMBEDDED: %w", err))
		}
		cfg.Embedded = embedded
	}
}
