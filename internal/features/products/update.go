package products

import (
	"context"
	"sort"
	"strings"

	"catalog-api/internal/domain"
	"catalog-api/internal/pipeline"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

type UpdateProductCommand struct {
	ID          uuid.UUID   `json:"-"`
	Name        string      `json:"name" validate:"required,max=200"`
	Description string      `json:"description" validate:"required"`
	ImageURL    string      `json:"imageUrl"`
	CategoryIDs []uuid.UUID `json:"categoryIds"`
}

type UpdateProductHandler struct {
	store repository.Store
}

func NewUpdateProductHandler(store repository.Store) *UpdateProductHandler {
	return &UpdateProductHandler{store: store}
}

// Handle replaces the product's fields and its full category association.
// Category ids that no longer resolve fail the request with a field-keyed
// validation error listing the missing ids.
func (h *UpdateProductHandler) Handle(ctx context.Context, request UpdateProductCommand) (pipeline.Unit, error) {
	product, err := h.store.Products().FindByIDWithCategories(ctx, request.ID)
	if err != nil {
		return pipeline.Unit{}, err
	}
	if product == nil {
		return pipeline.Unit{}, domain.NewNotFoundError("Product", request.ID)
	}

	if err := product.Update(request.Name, request.Description, request.ImageURL); err != nil {
		return pipeline.Unit{}, err
	}

	if len(request.CategoryIDs) > 0 {
		resolved, err := h.store.Categories().ListByIDs(ctx, request.CategoryIDs)
		if err != nil {
			return pipeline.Unit{}, err
		}

		if missing := missingIDs(request.CategoryIDs, resolved); len(missing) > 0 {
			return pipeline.Unit{}, domain.NewFieldError(
				"CategoryIds", "categories with ids %s were not found", joinIDs(missing),
			)
		}
	}

	uow, err := h.store.Begin(ctx)
	if err != nil {
		return pipeline.Unit{}, err
	}
	defer uow.Rollback()

	if err := uow.Products().Update(ctx, product); err != nil {
		return pipeline.Unit{}, err
	}
	if err := uow.Products().ReplaceCategories(ctx, product.ID, request.CategoryIDs); err != nil {
		return pipeline.Unit{}, err
	}
	if _, err := uow.Commit(ctx); err != nil {
		return pipeline.Unit{}, err
	}

	return pipeline.Unit{}, nil
}

func missingIDs(requested []uuid.UUID, found []*domain.Category) []uuid.UUID {
	present := make(map[uuid.UUID]bool, len(found))
	for _, c := range found {
		present[c.ID] = true
	}

	seen := make(map[uuid.UUID]bool, len(requested))
	missing := []uuid.UUID{}
	for _, id := range requested {
		if !present[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return missing
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
