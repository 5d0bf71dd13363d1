package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type txKey struct{}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewBaseRepository creates a new base repository. m may be nil.
func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) BaseRepository {
	return BaseRepository{db: db, metrics: m}
}

// conn returns the transaction carried by ctx, or the pool.
func (r *BaseRepository) conn(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return r.db
}

func (r *BaseRepository) get(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := sqlx.GetContext(ctx, r.conn(ctx), dest, query, args...)
	r.metrics.ObserveDB(op, start, ignoreNoRows(err))
	return err
}

func (r *BaseRepository) selectAll(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := sqlx.SelectContext(ctx, r.conn(ctx), dest, query, args...)
	r.metrics.ObserveDB(op, start, err)
	return err
}

func (r *BaseRepository) exec(ctx context.Context, op string, query string, args ...interface{}) (int64, error) {
	start := time.Now()
	res, err := r.conn(ctx).ExecContext(ctx, query, args...)
	r.metrics.ObserveDB(op, start, err)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// namedExec binds :name parameters from arg.
func (r *BaseRepository) namedExec(ctx context.Context, op string, query string, arg interface{}) (int64, error) {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return 0, err
	}
	return r.exec(ctx, op, r.db.Rebind(bound), args...)
}

// mapError translates driver errors into the application taxonomy.
func mapError(err error, operation, entity string, key interface{}) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFound(entity, key)
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return errors.Integrity(fmt.Errorf("%s: %w", operation, err))
		}
	}
	return errors.Persistence(operation, err)
}

func ignoreNoRows(err error) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

type transactor struct {
	db *sqlx.DB
}

// NewTransactor returns a repository.Transactor backed by db.
func NewTransactor(db *sqlx.DB) repository.Transactor {
	return &transactor{db: db}
}

// WithinTx executes fn within a transaction. Nested calls join the outer one.
func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Persistence("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError(err, "commit transaction", "", nil)
	}
	return nil
}

// likePattern builds a case-insensitive substring pattern with LIKE
// metacharacters in term escaped.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
