package categories

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/pipeline"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

type UpdateCategoryCommand struct {
	ID          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description"`
}

type UpdateCategoryHandler struct {
	store repository.Store
}

func NewUpdateCategoryHandler(store repository.Store) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{store: store}
}

func (h *UpdateCategoryHandler) Handle(ctx context.Context, request UpdateCategoryCommand) (pipeline.Unit, error) {
	category, err := h.store.Categories().FindByID(ctx, request.ID)
	if err != nil {
		return pipeline.Unit{}, err
	}
	if category == nil {
		return pipeline.Unit{}, domain.NewNotFoundError("Category", request.ID)
	}

	if err := category.Update(request.Name, request.Description); err != nil {
		return pipeline.Unit{}, err
	}

	uow, err := h.store.Begin(ctx)
	if err != nil {
		return pipeline.Unit{}, err
	}
	defer uow.Rollback()

	if err := uow.Categories().Update(ctx, category); err != nil {
		return pipeline.Unit{}, err
	}
	if _, err := uow.Commit(ctx); err != nil {
		return pipeline.Unit{}, err
	}

	return pipeline.Unit{}, nil
}
