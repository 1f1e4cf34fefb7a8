// Package requests stores citizen service requests.
package requests

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceRequest, error)
	Get(ctx context.Context, id string) (*models.ServiceRequest, error)
	// List returns every request, newest first.
	List(ctx context.Context) ([]*models.ServiceRequest, error)
	// ListByUser returns the requests submitted by email, newest first.
	ListByUser(ctx context.Context, email string) ([]*models.ServiceRequest, error)
	// Decide moves a pending request to status with the given admin notes and
	// returns the updated row. A request that is no longer pending yields
	// common.ErrInvalidTransition.
	Decide(ctx context.Context, id string, status models.RequestStatus, notes string) (*models.ServiceRequest, error)
}
