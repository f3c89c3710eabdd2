package repository

import (
	"context"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

// ProductRepository is the data-access contract for products. Lookups return
// (nil, nil) when the row is absent; deciding whether absence is an error
// belongs to the caller.
type ProductRepository interface {
	Add(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindByIDWithCategories(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListWithCategoriesPaged(ctx context.Context, page, pageSize int) ([]*domain.Product, error)
	Count(ctx context.Context) (int, error)
	ReplaceCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error
}

// CategoryRepository is the data-access contract for categories.
type CategoryRepository interface {
	Add(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	ListAll(ctx context.Context) ([]*domain.Category, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error)
}

// UserRepository is the data-access contract for accounts.
type UserRepository interface {
	Add(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UnitOfWork groups repository writes made during one request into a single
// transaction. Commit applies everything atomically and reports the total
// number of rows affected; Rollback after Commit is a no-op.
type UnitOfWork interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Users() UserRepository
	Commit(ctx context.Context) (int64, error)
	Rollback() error
}

// Store hands out pool-backed repositories for reads and opens units of work
// for writes. One unit of work per request; scopes are never shared.
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Users() UserRepository
	Begin(ctx context.Context) (UnitOfWork, error)
}
