package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/dbx"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/repomanager"
)

// MarketplaceService sells flight seats for VHS.
type MarketplaceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	accounts    *AccountService
}

func NewMarketplaceService(db *sql.DB, m repomanager.RepositoryManager, accounts *AccountService) *MarketplaceService {
	return &MarketplaceService{db: db, repomanager: m, accounts: accounts}
}

func (s *MarketplaceService) ListFlights(ctx context.Context) ([]*models.Flight, error) {
	return s.repomanager.Flights(s.db).List(ctx)
}

func (s *MarketplaceService) CreateFlight(ctx context.Context, f *models.Flight) (*models.Flight, error) {
	f.FlightNumber = strings.TrimSpace(f.FlightNumber)
	f.DepartureCity = strings.TrimSpace(f.DepartureCity)
	f.ArrivalCity = strings.TrimSpace(f.ArrivalCity)

	switch {
	case f.FlightNumber == "" || f.DepartureCity == "" || f.ArrivalCity == "":
		return nil, fmt.Errorf("%w: flight number and cities are required", common.ErrValidation)
	case f.DepartureTime.IsZero():
		return nil, fmt.Errorf("%w: departure time is required", common.ErrValidation)
	case f.ArrivalTime != nil && f.ArrivalTime.Before(f.DepartureTime):
		return nil, fmt.Errorf("%w: arrival precedes departure", common.ErrValidation)
	case !f.Price.IsPositive():
		return nil, fmt.Errorf("%w: price must be positive", common.ErrValidation)
	case common.CheckAmountScale(f.Price) != nil:
		return nil, common.CheckAmountScale(f.Price)
	case f.AvailableSeats < 0:
		return nil, fmt.Errorf("%w: seats must not be negative", common.ErrValidation)
	case f.Status != "" && !f.Status.Valid():
		return nil, fmt.Errorf("%w: unknown flight status %q", common.ErrValidation, f.Status)
	}

	return s.repomanager.Flights(s.db).Create(ctx, f)
}

func (s *MarketplaceService) SetFlightStatus(ctx context.Context, id string, status models.FlightStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown flight status %q", common.ErrValidation, status)
	}
	return s.repomanager.Flights(s.db).SetStatus(ctx, id, status)
}

// Purchase buys one seat on a scheduled flight. The seat, the debit and the
// purchase record are written in one transaction.
func (s *MarketplaceService) Purchase(ctx context.Context, email, flightID string) (*models.Transaction, error) {
	buyer, err := s.accounts.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	var record *models.Transaction
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		flights := s.repomanager.Flights(tx)

		flight, err := flights.GetForUpdate(ctx, flightID)
		if err != nil {
			return err
		}
		if flight.Status != models.FlightScheduled || flight.AvailableSeats <= 0 {
			return common.ErrNotOpen
		}

		account, err := s.repomanager.Accounts(tx).GetByEmailForUpdate(ctx, email)
		if err != nil {
			return err
		}
		if account.Balance.LessThan(flight.Price) {
			return common.ErrInsufficientBalance
		}

		if err := flights.TakeSeat(ctx, flightID); err != nil {
			return err
		}
		if err := s.repomanager.Accounts(tx).AddBalance(ctx, email, flight.Price.Neg()); err != nil {
			return err
		}

		record, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			Type:        models.TransactionPurchase,
			Amount:      flight.Price,
			FromEmail:   email,
			FromVntID:   buyer.VntID,
			ItemName:    "Flight " + flight.FlightNumber,
			Description: fmt.Sprintf("%s to %s on %s", flight.DepartureCity, flight.ArrivalCity, flight.DepartureTime.UTC().Format(time.DateOnly)),
			Status:      models.TransactionCompleted,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
