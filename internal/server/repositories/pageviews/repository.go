// Package pageviews records which portal pages citizens open.
package pageviews

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, email string, pageName string) error
	// CountSince returns view counts per page name since t.
	CountSince(ctx context.Context, t time.Time) (map[string]int64, error)
}
