package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same repository
// code serves pooled reads and transactional writes.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps a pooled connection into a Store.
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Products() ProductRepository {
	return &productRepository{q: s.db}
}

func (s *postgresStore) Categories() CategoryRepository {
	return &categoryRepository{q: s.db}
}

func (s *postgresStore) Users() UserRepository {
	return &userRepository{q: s.db}
}

func (s *postgresStore) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &postgresUnitOfWork{tx: tx}, nil
}

type postgresUnitOfWork struct {
	tx       *sql.Tx
	affected atomic.Int64
	done     bool
}

func (u *postgresUnitOfWork) Products() ProductRepository {
	return &productRepository{q: u.tx, affected: &u.affected}
}

func (u *postgresUnitOfWork) Categories() CategoryRepository {
	return &categoryRepository{q: u.tx, affected: &u.affected}
}

func (u *postgresUnitOfWork) Users() UserRepository {
	return &userRepository{q: u.tx, affected: &u.affected}
}

func (u *postgresUnitOfWork) Commit(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		_ = u.tx.Rollback()
		u.done = true
		return 0, err
	}

	if err := u.tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.done = true
	return u.affected.Load(), nil
}

// Rollback discards all pending changes. Calling it after a successful Commit
// is a no-op, so it is safe to defer right after Begin.
func (u *postgresUnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

// track records the affected-row count of a statement executed inside a unit
// of work so Commit can report the total.
func track(affected *atomic.Int64, res sql.Result) {
	if affected == nil || res == nil {
		return
	}
	if n, err := res.RowsAffected(); err == nil {
		affected.Add(n)
	}
}
