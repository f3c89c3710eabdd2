package products

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/pipeline"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

type DeleteProductCommand struct {
	ID uuid.UUID `json:"-"`
}

type DeleteProductHandler struct {
	store repository.Store
}

func NewDeleteProductHandler(store repository.Store) *DeleteProductHandler {
	return &DeleteProductHandler{store: store}
}

// Handle deletes an existing product. A missing id is a not-found error; no
// delete is issued in that case.
func (h *DeleteProductHandler) Handle(ctx context.Context, request DeleteProductCommand) (pipeline.Unit, error) {
	product, err := h.store.Products().FindByID(ctx, request.ID)
	if err != nil {
		return pipeline.Unit{}, err
	}
	if product == nil {
		return pipeline.Unit{}, domain.NewNotFoundError("Product", request.ID)
	}

	uow, err := h.store.Begin(ctx)
	if err != nil {
		return pipeline.Unit{}, err
	}
	defer uow.Rollback()

	if err := uow.Products().Delete(ctx, product.ID); err != nil {
		return pipeline.Unit{}, err
	}
	if _, err := uow.Commit(ctx); err != nil {
		return pipeline.Unit{}, err
	}

	return pipeline.Unit{}, nil
}
