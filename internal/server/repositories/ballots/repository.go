// Package ballots stores cast ballots. A citizen has at most one ballot per vote.
package ballots

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type Repository interface {
	// Create returns common.ErrAlreadyExists for a second ballot by the same
	// user on the same vote.
	Create(ctx context.Context, ballot *models.Ballot) (*models.Ballot, error)
	// FindByUser returns common.ErrorNotFound if the user has not voted.
	FindByUser(ctx context.Context, voteID string, email string) (*models.Ballot, error)
	// CountByVote groups ballots by selected option. Options nobody picked are absent.
	CountByVote(ctx context.Context, voteID string) ([]models.OptionCount, error)
}
