package documents

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

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query := `
		INSERT INTO documents (user_email, document_name, document_type, storage_key, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, doc.UserEmail, doc.DocumentName, doc.DocumentType, doc.StorageKey, doc.Notes).
		Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	query := `
		SELECT id, user_email, document_name, document_type, storage_key, notes, created_at
		FROM documents
		WHERE id = $1
	`
	d := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.UserEmail, &d.DocumentName, &d.DocumentType, &d.StorageKey, &d.Notes, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, email string) ([]*models.Document, error) {
	query := `
		SELECT id, user_email, document_name, document_type, storage_key, notes, created_at
		FROM documents
		WHERE user_email = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.UserEmail, &d.DocumentName, &d.DocumentType, &d.StorageKey, &d.Notes, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
