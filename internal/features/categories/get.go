package categories

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

type GetCategoryQuery struct {
	ID uuid.UUID
}

type GetCategoryHandler struct {
	store repository.Store
}

func NewGetCategoryHandler(store repository.Store) *GetCategoryHandler {
	return &GetCategoryHandler{store: store}
}

func (h *GetCategoryHandler) Handle(ctx context.Context, request GetCategoryQuery) (CategoryDTO, error) {
	category, err := h.store.Categories().FindByID(ctx, request.ID)
	if err != nil {
		return CategoryDTO{}, err
	}
	if category == nil {
		return CategoryDTO{}, domain.NewNotFoundError("Category", request.ID)
	}

	return toDTO(category), nil
}

type ListCategoriesQuery struct{}

type ListCategoriesHandler struct {
	store repository.Store
}

func NewListCategoriesHandler(store repository.Store) *ListCategoriesHandler {
	return &ListCategoriesHandler{store: store}
}

func (h *ListCategoriesHandler) Handle(ctx context.Context, _ ListCategoriesQuery) ([]CategoryDTO, error) {
	found, err := h.store.Categories().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]CategoryDTO, 0, len(found))
	for _, category := range found {
		dtos = append(dtos, toDTO(category))
	}
	return dtos, nil
}
