package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/dbx"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// HistoryEntry is a ledger record as seen by one citizen.
type HistoryEntry struct {
	Transaction *models.Transaction
	// Debit is true when the citizen is the sender, whatever the type.
	Debit bool
}

// DisplayAmount renders the amount as "-50 VHS" or "+20 VHS".
func (e HistoryEntry) DisplayAmount() string {
	return common.SignedAmount(e.Transaction.Amount, e.Debit)
}

// LedgerService reads and writes balance-moving transactions.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	accounts    *AccountService
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, accounts *AccountService) *LedgerService {
	return &LedgerService{db: db, repomanager: m, accounts: accounts}
}

// History returns every record email sent or received, newest first.
// Records without a timestamp sort last. A self-transfer appears once.
func (s *LedgerService) History(ctx context.Context, email string) ([]HistoryEntry, error) {
	repo := s.repomanager.Transactions(s.db)

	sent, err := repo.ListSent(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error listing sent transactions: %w", err)
	}
	received, err := repo.ListReceived(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error listing received transactions: %w", err)
	}

	return mergeHistory(email, sent, received), nil
}

func mergeHistory(email string, lists ...[]*models.Transaction) []HistoryEntry {
	seen := make(map[string]struct{})
	entries := make([]HistoryEntry, 0)

	for _, list := range lists {
		for _, tx := range list {
			if tx == nil {
				continue
			}
			if tx.ID != "" {
				if _, dup := seen[tx.ID]; dup {
					continue
				}
				seen[tx.ID] = struct{}{}
			}
			entries = append(entries, HistoryEntry{Transaction: tx, Debit: tx.FromEmail == email})
		}
	}

	// zero time is the oldest possible instant, so undated records go last
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Transaction.CreatedAt.After(entries[j].Transaction.CreatedAt)
	})
	return entries
}

// Balance resolves the caller's account.
func (s *LedgerService) Balance(ctx context.Context, email string) (*models.Account, error) {
	return s.accounts.Resolve(ctx, email)
}

// Transfer moves amount from the sender's account to the account owning
// toVntID. The debit, the credit and the record are written in one
// transaction.
func (s *LedgerService) Transfer(ctx context.Context, fromEmail, toVntID string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	if err := common.CheckAmountScale(amount); err != nil {
		return nil, err
	}
	toVntID = strings.TrimSpace(toVntID)
	if toVntID == "" {
		return nil, fmt.Errorf("%w: recipient VNT ID is required", common.ErrValidation)
	}

	// the sender's account may not exist yet
	if _, err := s.accounts.Resolve(ctx, fromEmail); err != nil {
		return nil, err
	}

	var record *models.Transaction
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		accounts := s.repomanager.Accounts(tx)

		to, err := accounts.GetByVntID(ctx, toVntID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("recipient %s: %w", toVntID, common.ErrorNotFound)
			}
			return err
		}
		if to.UserEmail == fromEmail {
			return fmt.Errorf("%w: cannot transfer to your own account", common.ErrValidation)
		}

		from, err := accounts.GetByEmailForUpdate(ctx, fromEmail)
		if err != nil {
			return err
		}
		if from.Balance.LessThan(amount) {
			return common.ErrInsufficientBalance
		}

		if err := accounts.AddBalance(ctx, fromEmail, amount.Neg()); err != nil {
			return err
		}
		if err := accounts.AddBalance(ctx, to.UserEmail, amount); err != nil {
			return err
		}

		record, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			Type:        models.TransactionTransferSent,
			Amount:      amount,
			FromEmail:   fromEmail,
			ToEmail:     to.UserEmail,
			FromVntID:   from.VntID,
			ToVntID:     to.VntID,
			Description: description,
			Status:      models.TransactionCompleted,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// AdminAdjust credits (positive amount) or debits (negative amount) the
// target's account on behalf of an administrator.
func (s *LedgerService) AdminAdjust(ctx context.Context, adminEmail, targetEmail string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must not be zero", common.ErrValidation)
	}
	if err := common.CheckAmountScale(amount); err != nil {
		return nil, err
	}

	target, err := s.accounts.Resolve(ctx, targetEmail)
	if err != nil {
		return nil, err
	}

	var record *models.Transaction
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).AddBalance(ctx, targetEmail, amount); err != nil {
			return err
		}
		created, err := s.repomanager.Transactions(tx).Create(ctx, adjustmentRecord(adminEmail, targetEmail, target.VntID, amount, description))
		if err != nil {
			return err
		}
		record = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// adjustmentRecord describes an admin adjustment. A credit flows from the
// admin to the target, a debit from the target to the admin.
func adjustmentRecord(adminEmail, targetEmail, targetVntID string, amount decimal.Decimal, description string) *models.Transaction {
	record := &models.Transaction{
		Type:        models.TransactionAdminAdjustment,
		Amount:      amount.Abs(),
		Description: description,
		Status:      models.TransactionCompleted,
	}
	if amount.IsPositive() {
		record.FromEmail, record.ToEmail = adminEmail, targetEmail
		record.ToVntID = targetVntID
	} else {
		record.FromEmail, record.ToEmail = targetEmail, adminEmail
		record.FromVntID = targetVntID
	}
	return record
}
