package categories

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

type CreateCategoryCommand struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type CreateCategoryHandler struct {
	store repository.Store
}

func NewCreateCategoryHandler(store repository.Store) *CreateCategoryHandler {
	return &CreateCategoryHandler{store: store}
}

func (h *CreateCategoryHandler) Handle(ctx context.Context, request CreateCategoryCommand) (uuid.UUID, error) {
	category, err := domain.NewCategory(request.Name, request.Description)
	if err != nil {
		return uuid.Nil, err
	}

	uow, err := h.store.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer uow.Rollback()

	if err := uow.Categories().Add(ctx, category); err != nil {
		return uuid.Nil, err
	}
	if _, err := uow.Commit(ctx); err != nil {
		return uuid.Nil, err
	}

	return category.ID, nil
}
