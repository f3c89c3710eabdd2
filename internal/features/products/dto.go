package products

import (
	"time"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

// ProductDTO is the response shape for product reads.
type ProductDTO struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ImageURL    string               `json:"imageUrl,omitempty"`
	Categories  []ProductCategoryDTO `json:"categories"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   *time.Time           `json:"updatedAt,omitempty"`
}

type ProductCategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func toDTO(p *domain.Product) ProductDTO {
	cats := make([]ProductCategoryDTO, 0, len(p.Categories))
	for _, c := range p.Categories {
		cats = append(cats, ProductCategoryDTO{ID: c.ID, Name: c.Name})
	}

	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Categories:  cats,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PagedResponse is the pagination envelope for list queries.
type PagedResponse[T any] struct {
	Items           []T  `json:"items"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewPagedResponse derives the pagination metadata: totalPages is the
// ceiling of totalCount/pageSize, previous exists past page one, next exists
// before the last page.
func NewPagedResponse[T any](items []T, pageNumber, pageSize, totalCount int) PagedResponse[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return PagedResponse[T]{
		Items:           items,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}
