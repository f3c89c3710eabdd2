package products

import (
	"context"
	"fmt"

	"catalog-api/internal/pipeline"
	"catalog-api/internal/repository"
	"catalog-api/internal/storage"

	"github.com/google/uuid"
)

// RegisterValidation wires the async product rules into the validation
// behavior.
func RegisterValidation(store repository.Store) {
	pipeline.RegisterRules(existingCategories(store, func(c CreateProductCommand) []uuid.UUID {
		return c.CategoryIDs
	}))
	pipeline.RegisterRules(
		existingCategories(store, func(c CreateProductWithImageCommand) []uuid.UUID {
			return c.CategoryIDs
		}),
		validImage(func(c CreateProductWithImageCommand) *storage.FileUpload {
			return c.File
		}, true),
	)
	pipeline.RegisterRules(validImage(func(c UpdateProductImageCommand) *storage.FileUpload {
		return c.File
	}, false))
}

// existingCategories rejects requests referencing category ids that do not
// resolve; missing ids are surfaced, never silently dropped.
func existingCategories[T any](store repository.Store, ids func(T) []uuid.UUID) pipeline.Rule[T] {
	return func(ctx context.Context, request T) (pipeline.Violations, error) {
		requested := ids(request)
		if len(requested) == 0 {
			return nil, nil
		}

		found, err := store.Categories().ListByIDs(ctx, requested)
		if err != nil {
			return nil, err
		}

		missing := missingIDs(requested, found)
		if len(missing) == 0 {
			return nil, nil
		}

		return pipeline.Violations{
			"CategoryIds": {fmt.Sprintf("categories with ids %s were not found", joinIDs(missing))},
		}, nil
	}
}

// validImage applies the image allow-lists. When optional, a nil file passes
// and the handler simply creates the product without an image.
func validImage[T any](file func(T) *storage.FileUpload, optional bool) pipeline.Rule[T] {
	return func(_ context.Context, request T) (pipeline.Violations, error) {
		upload := file(request)
		if upload == nil && optional {
			return nil, nil
		}

		if message := storage.ValidateImage(upload); message != "" {
			return pipeline.Violations{"ImageFile": {message}}, nil
		}
		return nil, nil
	}
}
