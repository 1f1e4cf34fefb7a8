// Package refreshtokens stores the sessions issued at login. Callers pass
// the opaque token the client holds; storage keys on its hash.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is unknown.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete is idempotent.
	Delete(ctx context.Context, token string) error

	// DeleteExpired purges tokens expired at t and reports how many.
	DeleteExpired(ctx context.Context, t time.Time) (int64, error)
}
