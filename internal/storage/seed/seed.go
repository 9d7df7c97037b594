// Package seed holds the sample products every fresh store starts with.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	"github.com/jenny-yujl/marketingTrain/internal/models"
)

//go:embed products.yaml
var productsYAML []byte

type productFile struct {
	Products []productEntry `yaml:"products"`
}

type productEntry struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	Image         string `yaml:"image"`
	OriginalPrice string `yaml:"originalPrice"`
	CurrentPrice  string `yaml:"currentPrice"`
	Category      string `yaml:"category"`
}

// Products returns the embedded sample catalogue in file order.
func Products() ([]models.ProductDraft, error) {
	return parseProducts(productsYAML)
}

func parseProducts(data []byte) ([]models.ProductDraft, error) {
	var f productFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed products: %w", err)
	}

	out := make([]models.ProductDraft, 0, len(f.Products))
	for i, p := range f.Products {
		original, err := models.ParseMoney(p.OriginalPrice)
		if err != nil {
			return nil, fmt.Errorf("seed product %d originalPrice: %w", i, err)
		}
		current, err := models.ParseMoney(p.CurrentPrice)
		if err != nil {
			return nil, fmt.Errorf("seed product %d currentPrice: %w", i, err)
		}
		out = append(out, models.ProductDraft{
			Name:          p.Name,
			Description:   p.Description,
			Image:         p.Image,
			OriginalPrice: original,
			CurrentPrice:  current,
			Category:      p.Category,
		})
	}
	return out, nil
}

// SeedProducts inserts the sample catalogue when the store has no products
// yet. It returns how many products were created.
func SeedProducts(ctx context.Context, store interfaces.ProductStore) (int, error) {
	existing, err := store.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	products, err := Products()
	if err != nil {
		return 0, err
	}
	for i := range products {
		if _, err := store.CreateProduct(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("create seed product %q: %w", products[i].Name, err)
		}
	}
	return len(products), nil
}
