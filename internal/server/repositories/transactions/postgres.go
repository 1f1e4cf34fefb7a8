package transactions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/citizenportal/internal/dbx"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (type, amount, from_email, to_email, from_vnt_id, to_vnt_id, description, item_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	if tx.Status == "" {
		tx.Status = models.TransactionCompleted
	}
	err := r.db.QueryRowContext(ctx, query,
		tx.Type, tx.Amount, tx.FromEmail, tx.ToEmail, tx.FromVntID, tx.ToVntID,
		tx.Description, tx.ItemName, tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tx, nil
}

const listQuery = `
	SELECT id, type, amount, from_email, to_email, from_vnt_id, to_vnt_id, description, item_name, status, created_at
	FROM transactions
	WHERE %s = $1
	ORDER BY created_at DESC
`

func (r *PostgresRepository) ListSent(ctx context.Context, email string) ([]*models.Transaction, error) {
	return r.list(ctx, fmt.Sprintf(listQuery, "from_email"), email)
}

func (r *PostgresRepository) ListReceived(ctx context.Context, email string) ([]*models.Transaction, error) {
	return r.list(ctx, fmt.Sprintf(listQuery, "to_email"), email)
}

func (r *PostgresRepository) list(ctx context.Context, query string, email string) ([]*models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		var item models.Transaction
		if err := rows.Scan(
			&item.ID, &item.Type, &item.Amount, &item.FromEmail, &item.ToEmail,
			&item.FromVntID, &item.ToVntID, &item.Description, &item.ItemName,
			&item.Status, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
