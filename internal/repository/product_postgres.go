package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

type productRepository struct {
	q        querier
	affected *atomic.Int64
}

func (r *productRepository) Add(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	res, err := r.q.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		nullString(product.ImageURL),
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	track(r.affected, res)
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, image_url = $4, updated_at = $5
		WHERE id = $1
	`

	res, err := r.q.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		nullString(product.ImageURL),
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	track(r.affected, res)
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	track(r.affected, res)
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, description, image_url, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}

	return product, nil
}

func (r *productRepository) FindByIDWithCategories(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	categories, err := r.categoriesFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	product.Categories = categories[id]

	return product, nil
}

func (r *productRepository) ListWithCategoriesPaged(ctx context.Context, page, pageSize int) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, image_url, created_at, updated_at
		FROM products
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	offset := (page - 1) * pageSize
	rows, err := r.q.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	ids := []uuid.UUID{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
		ids = append(ids, product.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	if len(ids) == 0 {
		return products, nil
	}

	categories, err := r.categoriesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		product.Categories = categories[product.ID]
	}

	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// ReplaceCategories clears the association rows and re-inserts the requested
// set; it never diff-merges.
func (r *productRepository) ReplaceCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to clear product categories: %w", err)
	}
	track(r.affected, res)

	for _, categoryID := range categoryIDs {
		res, err := r.q.ExecContext(
			ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			productID,
			categoryID,
		)
		if err != nil {
			return fmt.Errorf("failed to assign category %s: %w", categoryID, err)
		}
		track(r.affected, res)
	}

	return nil
}

func (r *productRepository) categoriesFor(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]domain.Category, error) {
	query := `
		SELECT pc.product_id, c.id, c.name, c.description, c.created_at, c.updated_at
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1::uuid[])
		ORDER BY c.name ASC
	`

	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.String())
	}

	rows, err := r.q.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load product categories: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.Category)
	for rows.Next() {
		var productID uuid.UUID
		var category domain.Category
		var description sql.NullString
		err := rows.Scan(
			&productID,
			&category.ID,
			&category.Name,
			&description,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product category: %w", err)
		}
		category.Description = description.String
		result[productID] = append(result[productID], category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product categories: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var imageURL sql.NullString
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&imageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.ImageURL = imageURL.String
	return product, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
