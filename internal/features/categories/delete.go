package categories

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/pipeline"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

type DeleteCategoryCommand struct {
	ID uuid.UUID `json:"-"`
}

type DeleteCategoryHandler struct {
	store repository.Store
}

func NewDeleteCategoryHandler(store repository.Store) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{store: store}
}

// Handle deletes an existing category. Deleting an id that does not resolve
// is a not-found error, not a no-op.
func (h *DeleteCategoryHandler) Handle(ctx context.Context, request DeleteCategoryCommand) (pipeline.Unit, error) {
	category, err := h.store.Categories().FindByID(ctx, request.ID)
	if err != nil {
		return pipeline.Unit{}, err
	}
	if category == nil {
		return pipeline.Unit{}, domain.NewNotFoundError("Category", request.ID)
	}

	uow, err := h.store.Begin(ctx)
	if err != nil {
		return pipeline.Unit{}, err
	}
	defer uow.Rollback()

	if err := uow.Categories().Delete(ctx, category.ID); err != nil {
		return pipeline.Unit{}, err
	}
	if _, err := uow.Commit(ctx); err != nil {
		return pipeline.Unit{}, err
	}

	return pipeline.Unit{}, nil
}
