// Package notifications is the email outbox. Rows are written in the same
// transaction as the change that triggers them and delivered afterwards.
package notifications

import (
	"context"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	Get(ctx context.Context, id string) (*models.Notification, error)
	MarkSent(ctx context.Context, id string) error
	// MarkFailed records a failed attempt and bumps the attempt counter.
	MarkFailed(ctx context.Context, id string, reason string) error
	// ListRetryable returns failed rows, and pending rows created before
	// staleBefore, with fewer than maxAttempts attempts, oldest first.
	ListRetryable(ctx context.Context, maxAttempts int, staleBefore time.Time, limit int) ([]*models.Notification, error)
}
