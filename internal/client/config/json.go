package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/citizenportal/internal/flagx"
	"github.com/dmitrijs2005/citizenportal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	SessionPollInterval timex.Duration `json:"session_poll_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	Embedded            *bool          `json:"embedded"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// Fields missing from the file keep their current values. Read and
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.SessionPollInterval.Duration > 0 {
		cfg.SessionPollInterval = jc.SessionPollInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Embedded != nil {
		cfg.Embedded = *jc.Embedded
	}
}
