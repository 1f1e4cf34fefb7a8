package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/dbx"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, vnt_id, user_email, balance, created_at FROM accounts`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx, selectColumns+` WHERE user_email = $1`, email)
}

func (r *PostgresRepository) GetByVntID(ctx context.Context, vntID string) (*models.Account, error) {
	return r.getOne(ctx, selectColumns+` WHERE vnt_id = $1`, vntID)
}

func (r *PostgresRepository) GetByEmailForUpdate(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx, selectColumns+` WHERE user_email = $1 FOR UPDATE`, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.Account, error) {
	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.VntID, &a.UserEmail, &a.Balance, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, email string, vntID string) (*models.Account, error) {
	query := `
		INSERT INTO accounts (vnt_id, user_email, balance)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_email) DO NOTHING
		RETURNING id, vnt_id, user_email, balance, created_at
	`
	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, vntID, email).Scan(&a.ID, &a.VntID, &a.UserEmail, &a.Balance, &a.CreatedAt)
	if err != nil {
		// no row back means another writer created the account first
		if errors.Is(err, sql.ErrNoRows) || dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) AddBalance(ctx context.Context, email string, delta decimal.Decimal) error {
	query := `
		UPDATE accounts SET balance = balance + $2
		WHERE user_email = $1 AND balance + $2 >= 0
	`
	res, err := r.db.ExecContext(ctx, query, email, delta)
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
		return common.ErrInsufficientBalance
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
