package transport

import (
	"encoding/json"
	"net/http"

	"catalog-api/internal/domain"
	"catalog-api/internal/features/categories"
	"catalog-api/internal/pipeline"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	errors *ErrorWriter
	logger *zap.Logger
}

func NewCategoryHandler(errors *ErrorWriter, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{errors: errors, logger: logger}
}

// RegisterRoutes registers all category routes. Reads are public and
// cacheable; create and update require the editor role, delete requires
// admin.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, cache, authenticate, requireEditor, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.With(cache).Get("/", h.List)
		r.With(cache).Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Group(func(r chi.Router) {
				r.Use(requireEditor)
				r.Post("/", h.Create)
				r.Put("/{id}", h.Update)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Delete("/{id}", h.Delete)
			})
		})
	})
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	found, err := mediator.Send[categories.ListCategoriesQuery, []categories.CategoryDTO](r.Context(), categories.ListCategoriesQuery{})
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, found)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	category, err := mediator.Send[categories.GetCategoryQuery, categories.CategoryDTO](r.Context(), categories.GetCategoryQuery{ID: id})
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd categories.CreateCategoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Body", "invalid request body"))
		return
	}

	id, err := mediator.Send[categories.CreateCategoryCommand, uuid.UUID](r.Context(), cmd)
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	h.logger.Info("category created", zap.String("category_id", id.String()))
	w.Header().Set("Location", "/api/categories/"+id.String())
	RespondJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd categories.UpdateCategoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Body", "invalid request body"))
		return
	}
	cmd.ID = id

	if _, err := mediator.Send[categories.UpdateCategoryCommand, pipeline.Unit](r.Context(), cmd); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if _, err := mediator.Send[categories.DeleteCategoryCommand, pipeline.Unit](r.Context(), categories.DeleteCategoryCommand{ID: id}); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.errors.WriteError(w, r, domain.NewFieldError("Id", "invalid identifier"))
		return uuid.Nil, false
	}
	return id, true
}
