package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{
		DB:                 conn,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func accountColumns() []string {
	return []string{"id", "username", "email", "phone", "password_hash", "updated_at", "created_at"}
}

func TestCreateAccount_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
		WithArgs("ada", "ada@example.com", "", "$argon2id$digest").
		WillReturnRows(sqlmock.NewRows(accountColumns()).
			AddRow(int64(1), "ada", "ada@example.com", "", "$argon2id$digest", now, now))

	saved, err := repo.CreateAccount(context.Background(), models.Account{
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "$argon2id$digest",
	})

	require.NoError(t, err)
	assert.EqualValues(t, 1, saved.AccountID)
	assert.Equal(t, "ada", saved.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccount_IdentityConflicts(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"username taken", "accounts_username_key", ErrUsernameTaken},
		{"email taken", "accounts_email_key", ErrEmailTaken},
		{"phone taken", "accounts_phone_key", ErrPhoneTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewAccountRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
				WillReturnError(&pgconn.PgError{
					Code:           pgerrcode.UniqueViolation,
					ConstraintName: tt.constraint,
				})

			_, err := repo.CreateAccount(context.Background(), models.Account{Username: "ada"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFindAccountByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(accountColumns()))

	_, err := repo.FindAccountByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdateAccountProfile_UsernameConflictFailsOnlyThisOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
		WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "accounts_username_key",
		})

	_, err := repo.UpdateAccountProfile(context.Background(), models.Account{AccountID: 1, Username: "taken"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
