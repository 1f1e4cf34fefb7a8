package requests

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

const returningColumns = `id, title, description, user_email, request_type, status, admin_notes, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := s.Scan(&req.ID, &req.Title, &req.Description, &req.UserEmail, &req.RequestType,
		&req.Status, &req.AdminNotes, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceRequest, error) {
	query := `
		INSERT INTO service_requests (title, description, user_email, request_type, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING ` + returningColumns

	created, err := scanRequest(r.db.QueryRowContext(ctx, query, req.Title, req.Description, req.UserEmail, req.RequestType))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.ServiceRequest, error) {
	query := `SELECT ` + returningColumns + ` FROM service_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return req, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.ServiceRequest, error) {
	query := `SELECT ` + returningColumns + ` FROM service_requests ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, email string) ([]*models.ServiceRequest, error) {
	query := `SELECT ` + returningColumns + ` FROM service_requests WHERE user_email = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, email)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.ServiceRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select service requests: %w", err)
	}
	defer rows.Close()

	var result []*models.ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Decide(ctx context.Context, id string, status models.RequestStatus, notes string) (*models.ServiceRequest, error) {
	query := `
		UPDATE service_requests
		SET status = $2, admin_notes = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + returningColumns

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id, status, notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrInvalidTransition
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return req, nil
}
