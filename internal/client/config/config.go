package config

import "time"

// Config holds runtime settings for the portal CLI.
type Config struct {
	ServerEndpointAddr  string
	SessionPollInterval time.Duration
	RequestTimeout      time.Duration
	// Embedded makes the CLI print "login-success" on stdout whenever a
	// session becomes authenticated, for a host process watching its output.
	Embedded bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionPollInterval = 2 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.Embedded = false
}

// LoadConfig layers defaults, the JSON file (-c/-config), PORTAL_CLI_*
// variables and flags, later layers winning.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
