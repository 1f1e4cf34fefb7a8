// Package transactions stores immutable ledger records.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type Repository interface {
	// Create inserts tx and fills ID and CreatedAt.
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	// ListSent returns records whose from_email is email, newest first.
	ListSent(ctx context.Context, email string) ([]*models.Transaction, error)
	// ListReceived returns records whose to_email is email, newest first.
	ListReceived(ctx context.Context, email string) ([]*models.Transaction, error)
}
