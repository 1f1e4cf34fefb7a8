package migrations

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_AreNumberedAndReversible(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for i, name := range names {
		assert.True(t, strings.HasPrefix(name, fmt.Sprintf("%05d_", i+1)), "%s breaks the numbering", name)

		body, err := fs.ReadFile(Migrations, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestMigrations_RefreshTokensStoreHashesOnly(t *testing.T) {
	body, err := fs.ReadFile(Migrations, "00001_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "token_hash TEXT NOT NULL UNIQUE")
}
