package products

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

type GetProductQuery struct {
	ID uuid.UUID
}

type GetProductHandler struct {
	store repository.Store
}

func NewGetProductHandler(store repository.Store) *GetProductHandler {
	return &GetProductHandler{store: store}
}

func (h *GetProductHandler) Handle(ctx context.Context, request GetProductQuery) (ProductDTO, error) {
	product, err := h.store.Products().FindByIDWithCategories(ctx, request.ID)
	if err != nil {
		return ProductDTO{}, err
	}
	if product == nil {
		return ProductDTO{}, domain.NewNotFoundError("Product", request.ID)
	}

	return toDTO(product), nil
}
