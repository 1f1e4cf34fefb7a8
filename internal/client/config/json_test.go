package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"portal-cli"}, args...)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Config
	}{
		{
			name: "all fields",
			body: `{"server_endpoint_addr":"portal.example:443","session_poll_interval":"5s","request_timeout":"30s","embedded":true}`,
			want: Config{ServerEndpointAddr: "portal.example:443", SessionPollInterval: 5 * time.Second, RequestTimeout: 30 * time.Second, Embedded: true},
		},
		{
			name: "missing fields keep defaults",
			body: `{"session_poll_interval":"1s"}`,
			want: Config{ServerEndpointAddr: "127.0.0.1:50051", SessionPollInterval: time.Second, RequestTimeout: 10 * time.Second, Embedded: true},
		},
		{
			name: "embedded false is honoured",
			body: `{"embedded":false}`,
			want: Config{ServerEndpointAddr: "127.0.0.1:50051", SessionPollInterval: 2 * time.Second, RequestTimeout: 10 * time.Second},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, "-c", writeConfig(t, tt.body))

			var cfg Config
			cfg.LoadDefaults()
			cfg.Embedded = true
			parseJson(&cfg)

			assert.Equal(t, tt.want, cfg)
		})
	}
}

func Test_parseJson_NoFile(t *testing.T) {
	withArgs(t, "-a", "elsewhere:1")

	cfg := Config{ServerEndpointAddr: "kept:1"}
	parseJson(&cfg)

	assert.Equal(t, "kept:1", cfg.ServerEndpointAddr)
}

func Test_parseJson_Errors(t *testing.T) {
	t.Run("unreadable file", func(t *testing.T) {
		withArgs(t, "-config", filepath.Join(t.TempDir(), "missing.json"))
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid JSON", func(t *testing.T) {
		withArgs(t, "-config", writeConfig(t, `{ not json`))
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
