package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Unknown flags are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-t", "-e"})
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	pollInterval := fs.Int("i", int(cfg.SessionPollInterval.Seconds()), "session poll interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Embedded, "e", cfg.Embedded, "embedded mode")
	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	cfg.SessionPollInterval = time.Duration(*pollInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
