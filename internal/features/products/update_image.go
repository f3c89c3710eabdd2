package products

import (
	"context"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"
	"catalog-api/internal/storage"

	"github.com/google/uuid"
)

type UpdateProductImageCommand struct {
	ID   uuid.UUID
	File *storage.FileUpload
}

type UpdateProductImageHandler struct {
	store repository.Store
	files *storage.LocalStorage
}

func NewUpdateProductImageHandler(store repository.Store, files *storage.LocalStorage) *UpdateProductImageHandler {
	return &UpdateProductImageHandler{store: store, files: files}
}

// Handle stores the uploaded image and attaches its public URL to the
// product. Returns the new URL.
func (h *UpdateProductImageHandler) Handle(ctx context.Context, request UpdateProductImageCommand) (string, error) {
	product, err := h.store.Products().FindByID(ctx, request.ID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.NewNotFoundError("Product", request.ID)
	}

	url, err := h.files.Save(ctx, request.File.Filename, request.File.Content)
	if err != nil {
		return "", err
	}

	product.SetImageURL(url)

	uow, err := h.store.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer uow.Rollback()

	if err := uow.Products().Update(ctx, product); err != nil {
		return "", err
	}
	if _, err := uow.Commit(ctx); err != nil {
		return "", err
	}

	return url, nil
}
