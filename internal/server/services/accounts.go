package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/repomanager"
)

const (
	vntPrefix       = "VNT-"
	vntSuffixLength = 9
	resolveAttempts = 3
)

// NewVntID builds "VNT-<unix millis>-<9 upper-case base36 chars>".
func NewVntID(t time.Time) (string, error) {
	suffix, err := common.MakeRandBase36String(vntSuffixLength)
	if err != nil {
		return "", err
	}
	return vntPrefix + strconv.FormatInt(t.UnixMilli(), 10) + "-" + suffix, nil
}

// AccountService resolves the single balance account of a citizen,
// creating it on first use.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m, now: time.Now}
}

// Resolve returns the account for email, creating a zero-balance one if
// none exists. Concurrent calls for a fresh email end with one account: the
// loser of the insert race re-reads the winner's row.
func (s *AccountService) Resolve(ctx context.Context, email string) (*models.Account, error) {
	if email == "" {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Accounts(s.db)

	for i := 0; i < resolveAttempts; i++ {
		acc, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return acc, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error loading account: %w", err)
		}

		vntID, err := NewVntID(s.now())
		if err != nil {
			return nil, fmt.Errorf("error generating vnt id: %w", err)
		}

		acc, err = repo.CreateIfAbsent(ctx, email, vntID)
		if err == nil {
			return acc, nil
		}
		if !errors.Is(err, common.ErrAlreadyExists) {
			return nil, fmt.Errorf("error creating account: %w", err)
		}
		// lost the race or hit a vnt id collision: read again
	}

	return nil, fmt.Errorf("error resolving account for %s: %w", email, common.ErrorInternal)
}

// LookupByVntID finds the account owning vntID.
func (s *AccountService) LookupByVntID(ctx context.Context, vntID string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByVntID(ctx, vntID)
}
