// Package documents stores metadata of citizen documents kept in object storage.
package documents

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	ListByUser(ctx context.Context, email string) ([]*models.Document, error)
}
