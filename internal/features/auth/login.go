package auth

import (
	"context"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// invalidCredentials is returned whenever username lookup or password
// comparison fails, so the response never reveals which part was wrong.
const invalidCredentials = "invalid username or password"

type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult carries a freshly issued access token.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginHandler struct {
	store  repository.Store
	tokens *TokenService
}

func NewLoginHandler(store repository.Store, tokens *TokenService) *LoginHandler {
	return &LoginHandler{store: store, tokens: tokens}
}

func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (AuthResult, error) {
	user, err := h.store.Users().FindByUsername(ctx, cmd.Username)
	if err != nil {
		return AuthResult{}, err
	}
	if user == nil {
		return AuthResult{}, domain.NewFieldError("Credentials", invalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		return AuthResult{}, domain.NewFieldError("Credentials", invalidCredentials)
	}

	token, expiresAt, err := h.tokens.Generate(user)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, ExpiresAt: expiresAt}, nil
}
