package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// fakeStore is an in-memory Store covering the user operations the auth
// handlers touch.
type fakeStore struct {
	users *fakeUserRepository
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: &fakeUserRepository{users: map[uuid.UUID]*domain.User{}}}
}

func (s *fakeStore) Products() repository.ProductRepository   { return nil }
func (s *fakeStore) Categories() repository.CategoryRepository { return nil }
func (s *fakeStore) Users() repository.UserRepository          { return s.users }

func (s *fakeStore) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	return &fakeUnitOfWork{store: s}, nil
}

type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) Products() repository.ProductRepository   { return nil }
func (u *fakeUnitOfWork) Categories() repository.CategoryRepository { return nil }
func (u *fakeUnitOfWork) Users() repository.UserRepository          { return u.store.users }
func (u *fakeUnitOfWork) Commit(ctx context.Context) (int64, error) { return 1, nil }
func (u *fakeUnitOfWork) Rollback() error                           { return nil }

type fakeUserRepository struct {
	users map[uuid.UUID]*domain.User
}

func (r *fakeUserRepository) Add(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func TestRegisterCreatesUserAndIssuesToken(t *testing.T) {
	store := newFakeStore()
	tokens := NewTokenService("test-secret")
	handler := NewRegisterHandler(store, tokens)

	result, err := handler.Handle(context.Background(), RegisterCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Expected registration to succeed, got: %v", err)
	}
	if result.Token == "" {
		t.Error("Expected a token to be issued")
	}

	user, _ := store.users.FindByUsername(context.Background(), "alice")
	if user == nil {
		t.Fatal("Expected the user to be persisted")
	}
	if user.Role != domain.RoleUser {
		t.Errorf("Expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "Sup3rSecret" {
		t.Error("Expected the password to be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Sup3rSecret")); err != nil {
		t.Error("Expected the stored hash to match the password")
	}
}

func TestRegisterAccumulatesUniquenessViolations(t *testing.T) {
	store := newFakeStore()
	tokens := NewTokenService("test-secret")
	handler := NewRegisterHandler(store, tokens)

	existing := domain.NewUser("alice", "alice@example.com", "hash", "")
	store.users.Add(context.Background(), existing)

	_, err := handler.Handle(context.Background(), RegisterCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})
	if err == nil {
		t.Fatal("Expected registration to fail")
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *domain.ValidationError, got %T", err)
	}
	if len(verr.Errors["Username"]) != 1 {
		t.Errorf("Expected a Username violation, got %v", verr.Errors)
	}
	if len(verr.Errors["Email"]) != 1 {
		t.Errorf("Expected an Email violation, got %v", verr.Errors)
	}
}

func TestLoginSucceedsWithCorrectCredentials(t *testing.T) {
	store := newFakeStore()
	tokens := NewTokenService("test-secret")

	hash, _ := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcryptCost)
	user := domain.NewUser("alice", "alice@example.com", string(hash), domain.RoleEditor)
	store.users.Add(context.Background(), user)

	handler := NewLoginHandler(store, tokens)
	result, err := handler.Handle(context.Background(), LoginCommand{Username: "alice", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("Expected login to succeed, got: %v", err)
	}

	claims, err := tokens.Parse(result.Token)
	if err != nil {
		t.Fatalf("Expected issued token to parse, got: %v", err)
	}
	if claims.Username != "alice" || claims.Role != domain.RoleEditor {
		t.Errorf("Expected claims to carry the user identity, got %+v", claims)
	}
	if claims.UserID != user.ID {
		t.Error("Expected claims to carry the user id")
	}
}

func TestLoginRejectsWrongPasswordAndUnknownUser(t *testing.T) {
	store := newFakeStore()
	tokens := NewTokenService("test-secret")

	hash, _ := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcryptCost)
	store.users.Add(context.Background(), domain.NewUser("alice", "alice@example.com", string(hash), ""))

	handler := NewLoginHandler(store, tokens)

	for _, cmd := range []LoginCommand{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: "Sup3rSecret"},
	} {
		_, err := handler.Handle(context.Background(), cmd)
		if err == nil {
			t.Fatalf("Expected login to fail for %+v", cmd)
		}

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Expected *domain.ValidationError, got %T", err)
		}
		if len(verr.Errors["Credentials"]) != 1 || verr.Errors["Credentials"][0] != invalidCredentials {
			t.Errorf("Expected the fixed credentials message, got %v", verr.Errors)
		}
	}
}

func TestTokenLifetimeIsOneHour(t *testing.T) {
	tokens := NewTokenService("test-secret")
	user := domain.NewUser("alice", "alice@example.com", "hash", "")

	_, expiresAt, err := tokens.Generate(user)
	if err != nil {
		t.Fatalf("Expected token generation to succeed, got: %v", err)
	}

	lifetime := time.Until(expiresAt)
	if lifetime < 59*time.Minute || lifetime > 61*time.Minute {
		t.Errorf("Expected roughly one hour of validity, got %v", lifetime)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tokens := NewTokenService("test-secret")
	other := NewTokenService("other-secret")

	user := domain.NewUser("alice", "alice@example.com", "hash", "")
	token, _, err := tokens.Generate(user)
	if err != nil {
		t.Fatalf("Expected token generation to succeed, got: %v", err)
	}

	if _, err := other.Parse(token); err == nil {
		t.Error("Expected a token signed with another secret to be rejected")
	}
}

func TestPasswordPolicy(t *testing.T) {
	cases := []struct {
		password   string
		violations int
	}{
		{"Sup3rSecret", 0},
		{"short1A", 1},
		{"alllowercase1", 1},
		{"ALLUPPERCASE1", 1},
		{"NoDigitsHere", 1},
		{"bad", 3},
		{"", 4},
	}

	for _, tc := range cases {
		v, err := passwordPolicy(context.Background(), RegisterCommand{Password: tc.password})
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", tc.password, err)
		}
		if len(v["Password"]) != tc.violations {
			t.Errorf("Password %q: expected %d violations, got %v", tc.password, tc.violations, v["Password"])
		}
	}
}
