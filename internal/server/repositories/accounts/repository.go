// Package accounts stores citizen balance accounts, one per email.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/shopspring/decimal"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByVntID(ctx context.Context, vntID string) (*models.Account, error)

	// GetByEmailForUpdate locks the account row until the surrounding
	// transaction ends. Only meaningful inside dbx.WithTx.
	GetByEmailForUpdate(ctx context.Context, email string) (*models.Account, error)

	// CreateIfAbsent inserts a zero-balance account. It returns
	// common.ErrAlreadyExists when the email or VNT ID is already taken.
	CreateIfAbsent(ctx context.Context, email string, vntID string) (*models.Account, error)

	// AddBalance applies a signed delta. A delta that would leave the balance
	// negative returns common.ErrInsufficientBalance.
	AddBalance(ctx context.Context, email string, delta decimal.Decimal) error
}
