package products

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

type CreateProductCommand struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Description string      `json:"description" validate:"required"`
	ImageURL    string      `json:"imageUrl"`
	CategoryIDs []uuid.UUID `json:"categoryIds"`
}

type CreateProductHandler struct {
	store repository.Store
}

func NewCreateProductHandler(store repository.Store) *CreateProductHandler {
	return &CreateProductHandler{store: store}
}

func (h *CreateProductHandler) Handle(ctx context.Context, request CreateProductCommand) (uuid.UUID, error) {
	product, err := domain.NewProduct(request.Name, request.Description, request.ImageURL)
	if err != nil {
		return uuid.Nil, err
	}

	uow, err := h.store.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer uow.Rollback()

	if err := uow.Products().Add(ctx, product); err != nil {
		return uuid.Nil, err
	}
	if len(request.CategoryIDs) > 0 {
		if err := uow.Products().ReplaceCategories(ctx, product.ID, request.CategoryIDs); err != nil {
			return uuid.Nil, err
		}
	}
	if _, err := uow.Commit(ctx); err != nil {
		return uuid.Nil, err
	}

	return product.ID, nil
}
