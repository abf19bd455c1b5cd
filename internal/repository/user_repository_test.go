package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "telegram_id", "username", "first_name", "last_name", "language_code", "patient_id", "patient_email", "created_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(int64(100), "ann", "Ann", "Smith", "en").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))

	user := &model.User{TelegramID: 100, Username: "ann", FirstName: "Ann", LastName: "Smith", LanguageCode: "en"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, created, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByTelegramID(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	patientID := int64(9)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE telegram_id = $1")).
		WithArgs(int64(100)).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(int64(1), int64(100), "ann", "Ann", "Smith", "en", &patientID, "ann@example.com", time.Now()))

	user, err := repo.GetByTelegramID(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, user.PatientID)
	assert.Equal(t, int64(9), *user.PatientID)
	assert.True(t, user.IsPatient())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByTelegramID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("FROM users").
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.GetByTelegramID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByID_Error(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("FROM users").
		WithArgs(int64(5)).
		WillReturnError(errors.New("conn reset"))

	_, err := repo.GetByID(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get user by id")
}

func TestUserRepository_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec("UPDATE users").
		WithArgs("ann2", "Ann", "Smith", "en", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE users").
		WithArgs("x", "", "", "", int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.Update(context.Background(), &model.User{ID: 1, Username: "ann2", FirstName: "Ann", LastName: "Smith", LanguageCode: "en"}))
	assert.ErrorIs(t, repo.Update(context.Background(), &model.User{ID: 2, Username: "x"}), ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_LinkPatient(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	patientID := int64(9)

	mock.ExpectExec(regexp.QuoteMeta("SET patient_id = COALESCE($1, patient_id)")).
		WithArgs(&patientID, "ann@example.com", int64(100)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.LinkPatient(context.Background(), 100, &patientID, "ann@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
