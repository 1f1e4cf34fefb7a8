package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a citizen's balance account. Exactly one exists per email.
type Account struct {
	ID        string
	VntID     string
	UserEmail string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
