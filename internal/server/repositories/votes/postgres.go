package votes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

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

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func (r *PostgresRepository) Create(ctx context.Context, vote *models.Vote) (*models.Vote, error) {
	options, err := json.Marshal(vote.Options)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}

	query := `
		INSERT INTO votes (title, description, vote_type, options, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		vote.Title, vote.Description, vote.VoteType, string(options), vote.Status,
		nullTime(vote.StartDate), nullTime(vote.EndDate),
	).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return vote, nil
}

const selectColumns = `SELECT id, title, description, vote_type, options, status, start_date, end_date, created_at FROM votes`

type scanner interface {
	Scan(dest ...any) error
}

func scanVote(s scanner) (*models.Vote, error) {
	var (
		v          models.Vote
		options    []byte
		start, end sql.NullTime
	)
	if err := s.Scan(&v.ID, &v.Title, &v.Description, &v.VoteType, &options, &v.Status, &start, &end, &v.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(options, &v.Options); err != nil {
		return nil, fmt.Errorf("decode options of vote %s: %w", v.ID, err)
	}
	v.StartDate = timePtr(start)
	v.EndDate = timePtr(end)
	return &v, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Vote, error) {
	v, err := scanVote(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) List(ctx context.Context, status models.VoteStatus) ([]*models.Vote, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC`)
	} else {
		rows, err = r.db.QueryContext(ctx, selectColumns+` WHERE status = $1 ORDER BY created_at DESC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select votes: %w", err)
	}
	defer rows.Close()

	var result []*models.Vote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to models.VoteStatus) error {
	query := `UPDATE votes SET status = $3 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrInvalidTransition
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE votes SET status = 'closed'
		WHERE status = 'active' AND end_date IS NOT NULL AND end_date < $1
	`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
