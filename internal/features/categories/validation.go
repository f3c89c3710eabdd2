package categories

import (
	"context"

	"catalog-api/internal/pipeline"
	"catalog-api/internal/repository"
)

// RegisterValidation wires the async category rules into the validation
// behavior. Struct-tag rules on the commands run automatically.
func RegisterValidation(store repository.Store) {
	pipeline.RegisterRules(uniqueNameOnCreate(store))
	pipeline.RegisterRules(uniqueNameOnUpdate(store))
}

func uniqueNameOnCreate(store repository.Store) pipeline.Rule[CreateCategoryCommand] {
	return func(ctx context.Context, request CreateCategoryCommand) (pipeline.Violations, error) {
		existing, err := store.Categories().FindByName(ctx, request.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return pipeline.Violations{"Name": {"a category with this name already exists"}}, nil
		}
		return nil, nil
	}
}

func uniqueNameOnUpdate(store repository.Store) pipeline.Rule[UpdateCategoryCommand] {
	return func(ctx context.Context, request UpdateCategoryCommand) (pipeline.Violations, error) {
		existing, err := store.Categories().FindByName(ctx, request.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != request.ID {
			return pipeline.Violations{"Name": {"a category with this name already exists"}}, nil
		}
		return nil, nil
	}
}
