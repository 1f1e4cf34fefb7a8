package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionPurchase         TransactionType = "purchase"
	TransactionTransferSent     TransactionType = "transfer_sent"
	TransactionTransferReceived TransactionType = "transfer_received"
	TransactionAdminAdjustment  TransactionType = "admin_adjustment"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPurchase, TransactionTransferSent, TransactionTransferReceived, TransactionAdminAdjustment:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is an immutable ledger record. Amount is always a positive
// magnitude; direction comes from the email pair.
type Transaction struct {
	ID          string
	Type        TransactionType
	Amount      decimal.Decimal
	FromEmail   string
	ToEmail     string
	FromVntID   string
	ToVntID     string
	Description string
	ItemName    string
	Status      TransactionStatus
	CreatedAt   time.Time
}
