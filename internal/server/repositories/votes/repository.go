// Package votes stores votes and drives their status column.
package votes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, vote *models.Vote) (*models.Vote, error)
	Get(ctx context.Context, id string) (*models.Vote, error)
	// List returns votes newest first; an empty status means all of them.
	List(ctx context.Context, status models.VoteStatus) ([]*models.Vote, error)
	// UpdateStatus moves a vote from one status to another. When the vote is
	// not in status from, common.ErrInvalidTransition is returned.
	UpdateStatus(ctx context.Context, id string, from, to models.VoteStatus) error
	// Delete removes the vote and, by cascade, its ballots.
	Delete(ctx context.Context, id string) error
	// CloseExpired closes active votes whose end date is before now.
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}
