package auth

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type RegisterCommand struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterHandler struct {
	store  repository.Store
	tokens *TokenService
}

func NewRegisterHandler(store repository.Store, tokens *TokenService) *RegisterHandler {
	return &RegisterHandler{store: store, tokens: tokens}
}

func (h *RegisterHandler) Handle(ctx context.Context, cmd RegisterCommand) (AuthResult, error) {
	verr := &domain.ValidationError{Errors: map[string][]string{}}

	existing, err := h.store.Users().FindByUsername(ctx, cmd.Username)
	if err != nil {
		return AuthResult{}, err
	}
	if existing != nil {
		verr.Errors["Username"] = append(verr.Errors["Username"], "username is already taken")
	}

	existing, err = h.store.Users().FindByEmail(ctx, cmd.Email)
	if err != nil {
		return AuthResult{}, err
	}
	if existing != nil {
		verr.Errors["Email"] = append(verr.Errors["Email"], "email is already registered")
	}

	if len(verr.Errors) > 0 {
		return AuthResult{}, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcryptCost)
	if err != nil {
		return AuthResult{}, err
	}

	user := domain.NewUser(cmd.Username, cmd.Email, string(hash), domain.RoleUser)

	uow, err := h.store.Begin(ctx)
	if err != nil {
		return AuthResult{}, err
	}
	defer uow.Rollback()

	if err := uow.Users().Add(ctx, user); err != nil {
		return AuthResult{}, err
	}
	if _, err := uow.Commit(ctx); err != nil {
		return AuthResult{}, err
	}

	token, expiresAt, err := h.tokens.Generate(user)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, ExpiresAt: expiresAt}, nil
}
