package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abitareitalia/leads-backend/internal/models"
)

func TestCreateLead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLeadRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO leads`).
			WithArgs(
				sqlmock.AnyArg(), nil, models.LeadTypeWaitlist, "Marco Rossi",
				"marco@example.com", sqlmock.AnyArg(), "it", models.LeadStatusNew,
				sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		lead, err := repo.CreateLead(NewLeadParams{
			LeadType: models.LeadTypeWaitlist,
			Name:     "Marco Rossi",
			Email:    "marco@example.com",
			Language: "it",
			Source:   "waitlist_student",
		})
		require.NoError(t, err)
		assert.NotNil(t, lead)
		assert.NotEqual(t, uuid.Nil, lead.ID)
		assert.Equal(t, models.LeadStatusNew, lead.Status)
		assert.False(t, lead.Phone.Valid)
		assert.Equal(t, "waitlist_student", lead.Source.String)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO leads`).
			WillReturnError(fmt.Errorf("database error"))

		lead, err := repo.CreateLead(NewLeadParams{
			LeadType: models.LeadTypeInvestor,
			Name:     "Marco Rossi",
			Email:    "marco@example.com",
			Language: "en",
		})
		assert.Error(t, err)
		assert.Nil(t, lead)
		assert.Contains(t, err.Error(), "failed to create lead")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetLeadByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLeadRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		leadID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM leads WHERE id`).
			WithArgs(leadID).
			WillReturnRows(leadRows().AddRow(
				leadID, nil, models.LeadTypeInvestor, "Marco Rossi", "marco@example.com",
				nil, "en", models.LeadStatusNew, "investor_form", now,
			))

		lead, err := repo.GetLeadByID(leadID)
		require.NoError(t, err)
		require.NotNil(t, lead)
		assert.Equal(t, leadID, lead.ID)
		assert.Equal(t, models.LeadTypeInvestor, lead.LeadType)
		assert.Nil(t, lead.UserID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		leadID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM leads WHERE id`).
			WithArgs(leadID).
			WillReturnError(sql.ErrNoRows)

		lead, err := repo.GetLeadByID(leadID)
		require.NoError(t, err)
		assert.Nil(t, lead)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		leadID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM leads WHERE id`).
			WithArgs(leadID).
			WillReturnError(fmt.Errorf("database error"))

		lead, err := repo.GetLeadByID(leadID)
		assert.Error(t, err)
		assert.Nil(t, lead)
		assert.Contains(t, err.Error(), "failed to get lead")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindWaitlistLeadByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLeadRepository(newMockDatabase(db))

	t.Run("Existing Lead", func(t *testing.T) {
		leadID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM leads WHERE email`).
			WithArgs("marco@example.com", models.LeadTypeWaitlist).
			WillReturnRows(leadRows().AddRow(
				leadID, nil, models.LeadTypeWaitlist, "Marco Rossi", "marco@example.com",
				nil, "it", models.LeadStatusNew, "waitlist_tourist", now,
			))

		lead, err := repo.FindWaitlistLeadByEmail("marco@example.com")
		require.NoError(t, err)
		require.NotNil(t, lead)
		assert.Equal(t, leadID, lead.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Lead", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM leads WHERE email`).
			WithArgs("new@example.com", models.LeadTypeWaitlist).
			WillReturnError(sql.ErrNoRows)

		lead, err := repo.FindWaitlistLeadByEmail("new@example.com")
		require.NoError(t, err)
		assert.Nil(t, lead)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateLeadStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLeadRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		leadID := uuid.New()

		mock.ExpectExec(`UPDATE leads SET status`).
			WithArgs(models.LeadStatusQualified, leadID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateLeadStatus(leadID, models.LeadStatusQualified)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lead Not Found", func(t *testing.T) {
		leadID := uuid.New()

		mock.ExpectExec(`UPDATE leads SET status`).
			WithArgs(models.LeadStatusContacted, leadID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateLeadStatus(leadID, models.LeadStatusContacted)
		assert.ErrorIs(t, err, sql.ErrNoRows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid Status", func(t *testing.T) {
		err := repo.UpdateLeadStatus(uuid.New(), "archived")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid lead status")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListLeads(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLeadRepository(newMockDatabase(db))

	t.Run("Filtered By Type And Status", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM leads`).
			WithArgs(models.LeadTypeStudent, models.LeadStatusNew).
			WillReturnRows(leadRows().
				AddRow(uuid.New(), nil, models.LeadTypeStudent, "Anna Bianchi", "anna@example.com",
					"+393331234567", "it", models.LeadStatusNew, "student_search", now).
				AddRow(uuid.New(), nil, models.LeadTypeStudent, "Luca Verdi", "luca@example.com",
					nil, "en", models.LeadStatusNew, "student_visit", now))

		leads, err := repo.ListLeads(models.LeadTypeStudent, models.LeadStatusNew)
		require.NoError(t, err)
		assert.Len(t, leads, 2)
		assert.Equal(t, "Anna Bianchi", leads[0].Name)
		assert.True(t, leads[0].Phone.Valid)
		assert.False(t, leads[1].Phone.Valid)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Result", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM leads`).
			WithArgs("", "").
			WillReturnRows(leadRows())

		leads, err := repo.ListLeads("", "")
		require.NoError(t, err)
		assert.Len(t, leads, 0)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM leads`).
			WithArgs("", "").
			WillReturnError(fmt.Errorf("database error"))

		leads, err := repo.ListLeads("", "")
		assert.Error(t, err)
		assert.Nil(t, leads)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func leadRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "lead_type", "name", "email", "phone",
		"language", "status", "source", "created_at",
	})
}

// Mock database implementation for testing. sqlx wraps the sqlmock
// connection so Get and Select work against mocked rows.
type mockDatabase struct {
	db *sqlx.DB
}

func newMockDatabase(db *sql.DB) *mockDatabase {
	return &mockDatabase{db: sqlx.NewDb(db, "sqlmock")}
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return m.db.Get(dest, query, args...)
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return m.db.Select(dest, query, args...)
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
