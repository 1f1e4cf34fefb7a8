package documents

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var docCols = []string{"id", "user_email", "document_name", "document_type", "storage_key", "notes", "created_at"}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+documents\b.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at\s*$`).
		WithArgs("a@x.com", "Passport", models.DocumentPassport, "documents/2026/01/02/k", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("d1", time.Now()))

	got, err := repo.Create(context.Background(), &models.Document{
		UserEmail: "a@x.com", DocumentName: "Passport", DocumentType: models.DocumentPassport, StorageKey: "documents/2026/01/02/k",
	})
	require.NoError(t, err)
	assert.Equal(t, "d1", got.ID)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+documents`).WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.Document{DocumentType: models.DocumentOther})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: boom")
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)FROM\s+documents\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs("d1").
		WillReturnRows(sqlmock.NewRows(docCols).AddRow("d1", "a@x.com", "ID", "id_card", "k", "n", time.Now()))
	mock.ExpectQuery(q).WithArgs("d2").WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentIDCard, got.DocumentType)

	_, err = repo.Get(context.Background(), "d2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+documents\s+WHERE\s+user_email\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(docCols).
			AddRow("d2", "a@x.com", "Permit", "permit", "k2", "", time.Now()).
			AddRow("d1", "a@x.com", "ID", "id_card", "k1", "", time.Now().Add(-time.Hour)))

	got, err := repo.ListByUser(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d2", got[0].ID)
}
