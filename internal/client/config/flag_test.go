package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	t.Run("all flags", func(t *testing.T) {
		withArgs(t, "-a", "portal.example:443", "-i", "5", "-t", "3", "-e")

		cfg := defaults()
		require.NotPanics(t, func() { parseFlags(cfg) })

		want := &Config{ServerEndpointAddr: "portal.example:443", SessionPollInterval: 5 * time.Second, RequestTimeout: 3 * time.Second, Embedded: true}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("foreign flags are ignored", func(t *testing.T) {
		withArgs(t, "-c", "cli.json", "-envfile", ".env", "-i", "1")

		cfg := defaults()
		require.NotPanics(t, func() { parseFlags(cfg) })

		want := defaults()
		want.SessionPollInterval = time.Second
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("bad interval panics", func(t *testing.T) {
		withArgs(t, "-i", "often")
		require.Panics(t, func() { parseFlags(defaults()) })
	})
}
