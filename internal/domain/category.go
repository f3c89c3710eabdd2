package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxCategoryNameLength = 100

// Category groups products. Name uniqueness across the catalog is enforced by
// the validation layer and by a unique index; the entity itself only guards
// the local invariants.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewCategory(name, description string) (*Category, error) {
	c := &Category{
		ID:          uuid.New(),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := c.setName(name); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Category) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	now := time.Now().UTC()
	c.UpdatedAt = &now
	return nil
}

func (c *Category) setName(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	return nil
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewDomainError("category name must not be empty")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return NewDomainError("category name must not exceed 100 characters")
	}
	return nil
}
