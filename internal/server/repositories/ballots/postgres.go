package ballots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/dbx"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, ballot *models.Ballot) (*models.Ballot, error) {
	query := `
		INSERT INTO ballots (vote_id, user_email, selected_option)
		VALUES ($1, $2, $3)
		RETURNING id, vote_timestamp
	`
	err := r.db.QueryRowContext(ctx, query, ballot.VoteID, ballot.UserEmail, ballot.SelectedOption).
		Scan(&ballot.ID, &ballot.VoteTimestamp)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ballot, nil
}

func (r *PostgresRepository) FindByUser(ctx context.Context, voteID string, email string) (*models.Ballot, error) {
	query := `
		SELECT id, vote_id, user_email, selected_option, vote_timestamp
		FROM ballots
		WHERE vote_id = $1 AND user_email = $2
	`
	b := &models.Ballot{}
	err := r.db.QueryRowContext(ctx, query, voteID, email).
		Scan(&b.ID, &b.VoteID, &b.UserEmail, &b.SelectedOption, &b.VoteTimestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) CountByVote(ctx context.Context, voteID string) ([]models.OptionCount, error) {
	query := `
		SELECT selected_option, COUNT(*)
		FROM ballots
		WHERE vote_id = $1
		GROUP BY selected_option
	`
	rows, err := r.db.QueryContext(ctx, query, voteID)
	if err != nil {
		return nil, fmt.Errorf("failed to count ballots: %w", err)
	}
	defer rows.Close()

	var result []models.OptionCount
	for rows.Next() {
		var c models.OptionCount
		if err := rows.Scan(&c.Option, &c.Count); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
