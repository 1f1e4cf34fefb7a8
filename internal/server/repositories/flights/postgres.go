package flights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

const selectColumns = `SELECT id, flight_number, departure_city, arrival_city, departure_time, arrival_time, aircraft_model, price, available_seats, status FROM flights`

type scanner interface {
	Scan(dest ...any) error
}

func scanFlight(s scanner) (*models.Flight, error) {
	var (
		f       models.Flight
		arrival sql.NullTime
	)
	err := s.Scan(&f.ID, &f.FlightNumber, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime,
		&arrival, &f.AircraftModel, &f.Price, &f.AvailableSeats, &f.Status)
	if err != nil {
		return nil, err
	}
	if arrival.Valid {
		t := arrival.Time
		f.ArrivalTime = &t
	}
	return &f, nil
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.Flight) (*models.Flight, error) {
	query := `
		INSERT INTO flights (flight_number, departure_city, arrival_city, departure_time, arrival_time, aircraft_model, price, available_seats, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var arrival sql.NullTime
	if f.ArrivalTime != nil {
		arrival = sql.NullTime{Time: *f.ArrivalTime, Valid: true}
	}
	if f.Status == "" {
		f.Status = models.FlightScheduled
	}
	err := r.db.QueryRowContext(ctx, query,
		f.FlightNumber, f.DepartureCity, f.ArrivalCity, f.DepartureTime, arrival,
		f.AircraftModel, f.Price, f.AvailableSeats, f.Status,
	).Scan(&f.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Flight, error) {
	return r.getOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Flight, error) {
	return r.getOne(ctx, selectColumns+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, id string) (*models.Flight, error) {
	f, err := scanFlight(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Flight, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY departure_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to select flights: %w", err)
	}
	defer rows.Close()

	var result []*models.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.FlightStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE flights SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) TakeSeat(ctx context.Context, id string) error {
	query := `
		UPDATE flights SET available_seats = available_seats - 1
		WHERE id = $1 AND status = 'scheduled' AND available_seats > 0
	`
	res, err := r.db.ExecContext(ctx, query, id)
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
		return common.ErrNotOpen
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
