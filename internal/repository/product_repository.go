package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jenny-yujl/marketingTrain/internal/db"
	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	"github.com/jenny-yujl/marketingTrain/internal/models"
)

const productSelect = "SELECT id, name, description, image, original_price, current_price, category FROM products"

type productRepository struct {
	db *db.Database
}

func newProductRepository(database *db.Database) *productRepository {
	return &productRepository{db: database}
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		p                      models.Product
		originalPrice, current string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &originalPrice, &current, &p.Category); err != nil {
		return nil, err
	}
	var err error
	if p.OriginalPrice, err = decodeMoney("original_price", originalPrice); err != nil {
		return nil, err
	}
	if p.CurrentPrice, err = decodeMoney("current_price", current); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, r.db.Dialect.Rebind(productSelect+" WHERE id = ?"), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, productSelect+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {
	p := &models.Product{ProductDraft: *draft}
	query := r.db.Dialect.Rebind(`
		INSERT INTO products (name, description, image, original_price, current_price, category)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Image,
		p.OriginalPrice.String(), p.CurrentPrice.String(), p.Category,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}
