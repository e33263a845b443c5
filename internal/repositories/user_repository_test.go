package repositories

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"tourhub_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHasher struct {
	calls int
	err   error
}

func (h *stubHasher) Hash(_ context.Context, plaintext string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plaintext, nil
}

type sqlRecorder struct {
	mu      sync.Mutex
	queries []string
}

func (r *sqlRecorder) Match(expectedSQL, actualSQL string) error {
	r.mu.Lock()
	r.queries = append(r.queries, actualSQL)
	r.mu.Unlock()
	if !regexp.MustCompile(expectedSQL).MatchString(actualSQL) {
		return errors.New("query does not match: " + actualSQL)
	}
	return nil
}

func (r *sqlRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queries) == 0 {
		return ""
	}
	return r.queries[len(r.queries)-1]
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherFunc(rec.Match)))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock, rec
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "role", "active"}).
		AddRow("u-1", "Ann", "ann@example.com", "user", true)
}

func TestUserRepository_FindActiveByEmail(t *testing.T) {
	db, mock, rec := newMockDB(t)
	repo := NewUserRepository(&stubHasher{})

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE active = .+ AND email = `).
		WillReturnRows(userRows())

	user, err := repo.FindActiveByEmail(context.Background(), db, "  Ann@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.NotContains(t, rec.last(), "password_hash")
	assert.NotContains(t, rec.last(), "password_reset_token")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindActiveByEmailWithSecrets(t *testing.T) {
	db, mock, rec := newMockDB(t)
	repo := NewUserRepository(&stubHasher{})

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE active = .+ AND email = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "active"}).AddRow("u-1", "digest", true))

	user, err := repo.FindActiveByEmailWithSecrets(context.Background(), db, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "digest", user.PasswordHash)
	assert.Contains(t, rec.last(), "active =")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindActiveByID_NotFound(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(&stubHasher{})

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE active = .+ AND id = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindActiveByID(context.Background(), db, "gone")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetPassword(t *testing.T) {
	db, mock, rec := newMockDB(t)
	hasher := &stubHasher{}
	repo := NewUserRepository(hasher)

	mock.ExpectExec(`UPDATE "users" SET .*"password_changed_at".+"password_hash".+"password_reset_expires".+"password_reset_token".+WHERE active = .+ AND id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetPassword(context.Background(), db, "u-1", "NewSecret1!", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, hasher.calls)
	assert.True(t, strings.HasPrefix(rec.last(), `UPDATE "users"`))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetPassword_NoWriteWhenHashFails(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(&stubHasher{err: context.Canceled})

	err := repo.SetPassword(context.Background(), db, "u-1", "NewSecret1!", time.Now())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetPassword_Inactive(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(&stubHasher{})

	mock.ExpectExec(`UPDATE "users" SET `).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPassword(context.Background(), db, "u-1", "NewSecret1!", time.Now())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_ConsumeResetToken(t *testing.T) {
	db, mock, _ := newMockDB(t)
	hasher := &stubHasher{}
	repo := NewUserRepository(hasher)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE active = .+ AND \(password_reset_token = .+ AND password_reset_expires > `).
		WillReturnRows(userRows())
	mock.ExpectExec(`UPDATE "users" SET .+"password_hash".+WHERE active = .+ AND \(id = .+ AND password_reset_token = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := repo.ConsumeResetToken(context.Background(), db, "token-hash", "NewSecret1!", now)
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	require.NotNil(t, user.PasswordChangedAt)
	assert.Equal(t, now, *user.PasswordChangedAt)
	assert.Equal(t, 1, hasher.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ConsumeResetToken_Unknown(t *testing.T) {
	db, mock, _ := newMockDB(t)
	hasher := &stubHasher{}
	repo := NewUserRepository(hasher)

	mock.ExpectQuery(`SELECT .+ FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ConsumeResetToken(context.Background(), db, "token-hash", "NewSecret1!", time.Now())
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
	assert.Zero(t, hasher.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ConsumeResetToken_LostRace(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(&stubHasher{})

	mock.ExpectQuery(`SELECT .+ FROM "users"`).WillReturnRows(userRows())
	mock.ExpectExec(`UPDATE "users" SET `).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.ConsumeResetToken(context.Background(), db, "token-hash", "NewSecret1!", time.Now())
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Deactivate(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(&stubHasher{})

	mock.ExpectExec(`UPDATE "users" SET "active"=.+WHERE active = .+ AND id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Deactivate(context.Background(), db, "u-1"))

	mock.ExpectExec(`UPDATE "users" SET "active"=`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Deactivate(context.Background(), db, "u-1"), ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(&stubHasher{})

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := repo.Create(context.Background(), db, &models.User{Email: "Ann@Example.com"}, "Secret123!")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
