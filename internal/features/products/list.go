package products

import (
	"context"

	"catalog-api/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type ListProductsQuery struct {
	PageNumber int
	PageSize   int
}

// normalize clamps the page number to a minimum of 1 and the page size to
// [1, 50], substituting the default size when none was requested.
func (q ListProductsQuery) normalize() (page, size int) {
	page = q.PageNumber
	if page < 1 {
		page = 1
	}

	size = q.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return page, size
}

type ListProductsHandler struct {
	store repository.Store
}

func NewListProductsHandler(store repository.Store) *ListProductsHandler {
	return &ListProductsHandler{store: store}
}

func (h *ListProductsHandler) Handle(ctx context.Context, request ListProductsQuery) (PagedResponse[ProductDTO], error) {
	page, size := request.normalize()

	totalCount, err := h.store.Products().Count(ctx)
	if err != nil {
		return PagedResponse[ProductDTO]{}, err
	}

	found, err := h.store.Products().ListWithCategoriesPaged(ctx, page, size)
	if err != nil {
		return PagedResponse[ProductDTO]{}, err
	}

	items := make([]ProductDTO, 0, len(found))
	for _, product := range found {
		items = append(items, toDTO(product))
	}

	return NewPagedResponse(items, page, size, totalCount), nil
}
