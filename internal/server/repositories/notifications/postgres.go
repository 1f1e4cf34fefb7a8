package notifications

import (
	"context"
	"database/sql"
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

const selectColumns = `SELECT id, recipient, subject, body, status, attempts, last_error, created_at, sent_at FROM notifications`

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(s scanner) (*models.Notification, error) {
	var (
		n      models.Notification
		sentAt sql.NullTime
	)
	if err := s.Scan(&n.ID, &n.Recipient, &n.Subject, &n.Body, &n.Status, &n.Attempts, &n.LastError, &n.CreatedAt, &sentAt); err != nil {
		return nil, err
	}
	if sentAt.Valid {
		t := sentAt.Time
		n.SentAt = &t
	}
	return &n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	query := `
		INSERT INTO notifications (recipient, subject, body, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, status, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, n.Recipient, n.Subject, n.Body).Scan(&n.ID, &n.Status, &n.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Notification, error) {
	n, err := scanNotification(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) MarkSent(ctx context.Context, id string) error {
	query := `
		UPDATE notifications
		SET status = 'sent', attempts = attempts + 1, last_error = '', sent_at = NOW()
		WHERE id = $1
	`
	return r.execOne(ctx, query, id)
}

func (r *PostgresRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	query := `
		UPDATE notifications
		SET status = 'failed', attempts = attempts + 1, last_error = $2
		WHERE id = $1
	`
	return r.execOne(ctx, query, id, reason)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) ListRetryable(ctx context.Context, maxAttempts int, staleBefore time.Time, limit int) ([]*models.Notification, error) {
	query := selectColumns + `
		WHERE attempts < $1
		  AND (status = 'failed' OR (status = 'pending' AND created_at < $2))
		ORDER BY created_at
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, maxAttempts, staleBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select notifications: %w", err)
	}
	defer rows.Close()

	var result []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
