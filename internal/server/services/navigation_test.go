package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/navigation"
	"github.com/dmitrijs2005/citizenportal/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationService_LogPageView(t *testing.T) {
	store := newMemStore()
	db, _ := newSQLMockDB(t)
	s := NewNavigationService(db, store, navigation.NewResolver([]string{"Dashboard", "Votes"}, "Dashboard"))
	ctx := context.Background()

	page, err := s.LogPageView(ctx, "a@example.com", "/votes/12")
	require.NoError(t, err)
	assert.Equal(t, "Votes", page)

	page, err = s.LogPageView(ctx, "a@example.com", "/")
	require.NoError(t, err)
	assert.Equal(t, "Dashboard", page)

	page, err = s.LogPageView(ctx, "a@example.com", "/nowhere")
	require.NoError(t, err)
	assert.Empty(t, page)

	counts, err := s.ViewsSince(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Votes": 1, "Dashboard": 1}, counts)
}

func TestSettingsService_Public(t *testing.T) {
	cfg := &config.Config{AppName: "Portal", AccessMode: config.AccessPrivate, Pages: []string{"Home", "Votes"}}
	s := NewSettingsService(cfg)

	got := s.Public()
	assert.Equal(t, PublicSettings{AppName: "Portal", AccessMode: "private", Pages: []string{"Home", "Votes"}, MainPage: "Home"}, got)
	assert.True(t, s.Private())

	got.Pages[0] = "changed"
	assert.Equal(t, "Home", cfg.Pages[0])
}
