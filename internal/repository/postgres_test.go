package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return dbContainer.Terminate, err
	}
	if err := goose.Up(testDB, "../../migrations"); err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	terminate, err := setupTestDB()
	if err != nil {
		log.Fatalf("Failed to set up test database: %v", err)
	}

	code := m.Run()

	if terminate != nil {
		if err := terminate(context.Background()); err != nil {
			log.Printf("Failed to terminate container: %v", err)
		}
	}

	os.Exit(code)
}

func mustProduct(t *testing.T, name string) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(name, "integration test product", "")
	if err != nil {
		t.Fatalf("Failed to build product: %v", err)
	}
	return product
}

func mustCategory(t *testing.T, name string) *domain.Category {
	t.Helper()
	category, err := domain.NewCategory(name, "integration test category")
	if err != nil {
		t.Fatalf("Failed to build category: %v", err)
	}
	return category
}

func TestProductRoundTripWithCategories(t *testing.T) {
	ctx := context.Background()
	store := NewPostgresStore(testDB)

	category := mustCategory(t, "RoundTrip "+uuid.NewString())
	product := mustProduct(t, "RoundTrip Product "+uuid.NewString())

	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin unit of work: %v", err)
	}
	defer uow.Rollback()

	if err := uow.Categories().Add(ctx, category); err != nil {
		t.Fatalf("Failed to add category: %v", err)
	}
	if err := uow.Products().Add(ctx, product); err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}
	if err := uow.Products().ReplaceCategories(ctx, product.ID, []uuid.UUID{category.ID}); err != nil {
		t.Fatalf("Failed to associate category: %v", err)
	}

	affected, err := uow.Commit(ctx)
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	if affected != 3 {
		t.Errorf("Expected 3 affected rows (category, product, association), got %d", affected)
	}

	found, err := store.Products().FindByIDWithCategories(ctx, product.ID)
	if err != nil {
		t.Fatalf("Failed to load product: %v", err)
	}
	if found == nil {
		t.Fatal("Expected the committed product to be readable")
	}
	if found.Name != product.Name {
		t.Errorf("Expected name %q, got %q", product.Name, found.Name)
	}
	if len(found.Categories) != 1 || found.Categories[0].ID != category.ID {
		t.Errorf("Expected the category association, got %+v", found.Categories)
	}
}

func TestRollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	store := NewPostgresStore(testDB)

	product := mustProduct(t, "Rolled Back "+uuid.NewString())

	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin unit of work: %v", err)
	}
	if err := uow.Products().Add(ctx, product); err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}
	if err := uow.Rollback(); err != nil {
		t.Fatalf("Failed to roll back: %v", err)
	}

	found, err := store.Products().FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("Unexpected lookup error: %v", err)
	}
	if found != nil {
		t.Error("Expected rolled back product to be absent")
	}
}

func TestFindByIDAbsentReturnsNil(t *testing.T) {
	ctx := context.Background()
	store := NewPostgresStore(testDB)

	product, err := store.Products().FindByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for an absent row, got: %v", err)
	}
	if product != nil {
		t.Error("Expected nil for an absent row")
	}

	category, err := store.Categories().FindByID(ctx, uuid.New())
	if err != nil || category != nil {
		t.Errorf("Expected (nil, nil) for an absent category, got (%v, %v)", category, err)
	}

	user, err := store.Users().FindByID(ctx, uuid.New())
	if err != nil || user != nil {
		t.Errorf("Expected (nil, nil) for an absent user, got (%v, %v)", user, err)
	}
}

func TestReplaceCategoriesClearsOldAssociations(t *testing.T) {
	ctx := context.Background()
	store := NewPostgresStore(testDB)

	first := mustCategory(t, "First "+uuid.NewString())
	second := mustCategory(t, "Second "+uuid.NewString())
	product := mustProduct(t, "Reassigned "+uuid.NewString())

	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin unit of work: %v", err)
	}
	defer uow.Rollback()

	for _, c := range []*domain.Category{first, second} {
		if err := uow.Categories().Add(ctx, c); err != nil {
			t.Fatalf("Failed to add category: %v", err)
		}
	}
	if err := uow.Products().Add(ctx, product); err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}
	if err := uow.Products().ReplaceCategories(ctx, product.ID, []uuid.UUID{first.ID}); err != nil {
		t.Fatalf("Failed to associate: %v", err)
	}
	if _, err := uow.Commit(ctx); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	uow, err = store.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin second unit of work: %v", err)
	}
	defer uow.Rollback()

	if err := uow.Products().ReplaceCategories(ctx, product.ID, []uuid.UUID{second.ID}); err != nil {
		t.Fatalf("Failed to reassign: %v", err)
	}
	if _, err := uow.Commit(ctx); err != nil {
		t.Fatalf("Failed to commit reassignment: %v", err)
	}

	found, err := store.Products().FindByIDWithCategories(ctx, product.ID)
	if err != nil {
		t.Fatalf("Failed to load product: %v", err)
	}
	if len(found.Categories) != 1 || found.Categories[0].ID != second.ID {
		t.Errorf("Expected only the new association, got %+v", found.Categories)
	}
}

func TestListWithCategoriesPagedOrdersByName(t *testing.T) {
	ctx := context.Background()
	store := NewPostgresStore(testDB)

	prefix := uuid.NewString()
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin unit of work: %v", err)
	}
	defer uow.Rollback()

	for _, name := range []string{"zzz", "aaa", "mmm"} {
		if err := uow.Products().Add(ctx, mustProduct(t, prefix+" "+name)); err != nil {
			t.Fatalf("Failed to add product: %v", err)
		}
	}
	if _, err := uow.Commit(ctx); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	total, err := store.Products().Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if total < 3 {
		t.Errorf("Expected at least 3 products, got %d", total)
	}

	listed, err := store.Products().ListWithCategoriesPaged(ctx, 1, 50)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	for i := 1; i < len(listed); i++ {
		if listed[i-1].Name > listed[i].Name {
			t.Fatalf("Expected name ordering, got %q before %q", listed[i-1].Name, listed[i].Name)
		}
	}
}

func TestUserLookupByUsernameAndEmail(t *testing.T) {
	ctx := context.Background()
	store := NewPostgresStore(testDB)

	username := "user-" + uuid.NewString()
	email := username + "@example.com"
	user := domain.NewUser(username, email, "hash", domain.RoleEditor)

	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin unit of work: %v", err)
	}
	defer uow.Rollback()

	if err := uow.Users().Add(ctx, user); err != nil {
		t.Fatalf("Failed to add user: %v", err)
	}
	if _, err := uow.Commit(ctx); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	byUsername, err := store.Users().FindByUsername(ctx, username)
	if err != nil || byUsername == nil {
		t.Fatalf("Expected user by username, got (%v, %v)", byUsername, err)
	}
	byEmail, err := store.Users().FindByEmail(ctx, email)
	if err != nil || byEmail == nil {
		t.Fatalf("Expected user by email, got (%v, %v)", byEmail, err)
	}
	if byUsername.ID != user.ID || byEmail.ID != user.ID {
		t.Error("Expected both lookups to return the same user")
	}
	if byUsername.Role != domain.RoleEditor {
		t.Errorf("Expected role to round-trip, got %q", byUsername.Role)
	}
}
