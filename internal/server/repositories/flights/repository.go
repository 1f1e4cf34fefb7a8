// Package flights stores marketplace flight listings.
package flights

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, f *models.Flight) (*models.Flight, error)
	Get(ctx context.Context, id string) (*models.Flight, error)
	// GetForUpdate locks the flight row for the rest of the transaction.
	GetForUpdate(ctx context.Context, id string) (*models.Flight, error)
	// List returns flights by departure time.
	List(ctx context.Context) ([]*models.Flight, error)
	SetStatus(ctx context.Context, id string, status models.FlightStatus) error
	// TakeSeat decrements available seats of a scheduled flight. It returns
	// common.ErrNotOpen when the flight is sold out or not scheduled.
	TakeSeat(ctx context.Context, id string) error
}
