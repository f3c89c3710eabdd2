package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxProductNameLength = 200

// Product is a catalog entry associated with zero or more categories.
// Construct through NewProduct and mutate through the named update methods
// only; both enforce the entity invariants.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	ImageURL    string
	Categories  []Category
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProduct(name, description, imageURL string) (*Product, error) {
	p := &Product{
		ID:        uuid.New(),
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := p.setName(name); err != nil {
		return nil, err
	}
	if err := p.setDescription(description); err != nil {
		return nil, err
	}

	return p, nil
}

// Update re-validates every touched field and refreshes the modified
// timestamp. On error the product is left unchanged.
func (p *Product) Update(name, description, imageURL string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateProductDescription(description); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.ImageURL = imageURL
	p.touch()
	return nil
}

// SetImageURL attaches a stored image location to the product.
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.touch()
}

// ReplaceCategories swaps the full association set; partial merges are not
// supported.
func (p *Product) ReplaceCategories(categories []Category) {
	p.Categories = categories
	p.touch()
}

func (p *Product) touch() {
	now := time.Now().UTC()
	p.UpdatedAt = &now
}

func (p *Product) setName(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	return nil
}

func (p *Product) setDescription(description string) error {
	if err := validateProductDescription(description); err != nil {
		return err
	}
	p.Description = description
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewDomainError("product name must not be empty")
	}
	if utf8.RuneCountInString(name) > maxProductNameLength {
		return NewDomainError("product name must not exceed 200 characters")
	}
	return nil
}

func validateProductDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return NewDomainError("product description must not be empty")
	}
	return nil
}
