package pageviews

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, email string, pageName string) error {
	query := `INSERT INTO page_views (user_email, page_name) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, email, pageName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CountSince(ctx context.Context, t time.Time) (map[string]int64, error) {
	query := `
		SELECT page_name, COUNT(*)
		FROM page_views
		WHERE created_at >= $1
		GROUP BY page_name
	`
	rows, err := r.db.QueryContext(ctx, query, t)
	if err != nil {
		return nil, fmt.Errorf("failed to count page views: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var (
			name  string
			count int64
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		result[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
