package products

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"
	"catalog-api/internal/storage"

	"github.com/google/uuid"
)

type CreateProductWithImageCommand struct {
	Name        string `validate:"required,max=200"`
	Description string `validate:"required"`
	CategoryIDs []uuid.UUID
	File        *storage.FileUpload
}

type CreateProductWithImageHandler struct {
	store repository.Store
	files *storage.LocalStorage
}

func NewCreateProductWithImageHandler(store repository.Store, files *storage.LocalStorage) *CreateProductWithImageHandler {
	return &CreateProductWithImageHandler{store: store, files: files}
}

func (h *CreateProductWithImageHandler) Handle(ctx context.Context, request CreateProductWithImageCommand) (uuid.UUID, error) {
	imageURL := ""
	if request.File != nil {
		url, err := h.files.Save(ctx, request.File.Filename, request.File.Content)
		if err != nil {
			return uuid.Nil, err
		}
		imageURL = url
	}

	product, err := domain.NewProduct(request.Name, request.Description, imageURL)
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
