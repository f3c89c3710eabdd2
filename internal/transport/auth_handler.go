package transport

import (
	"encoding/json"
	"net/http"

	"catalog-api/internal/domain"
	"catalog-api/internal/features/auth"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	errors *ErrorWriter
	logger *zap.Logger
}

func NewAuthHandler(errors *ErrorWriter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{errors: errors, logger: logger}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd auth.RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Body", "invalid request body"))
		return
	}

	result, err := mediator.Send[auth.RegisterCommand, auth.AuthResult](r.Context(), cmd)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	h.logger.Info("user registered", zap.String("username", cmd.Username))
	RespondJSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd auth.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Body", "invalid request body"))
		return
	}

	result, err := mediator.Send[auth.LoginCommand, auth.AuthResult](r.Context(), cmd)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, result)
}
