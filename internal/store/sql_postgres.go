package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/noteleaf/noteleaf/internal/config"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/migrations"
)

// DB wraps the shared PostgreSQL connection together with the error
// classifier used to decide whether a failed operation is worth retrying.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation is
// transient ([Retryable]) or permanent ([NonRetryable]).
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// NewConnectPostgres opens, pings and wraps a PostgreSQL connection
// described by cfg.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	return db, nil
}

// withRetry runs op, retrying with exponential backoff (3 attempts max) as
// long as the classifier reports the failure as transient. Permanent errors
// are returned on the first attempt.
func (db *DB) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if db.errorClassificator.Classify(err) == Retryable {
			return retry.RetryableError(err)
		}
		return err
	})
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// postgresConstraint returns the name of the constraint a unique_violation
// fired on, or "" when err is not a PostgreSQL driver error.
func postgresConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	return ""
}
