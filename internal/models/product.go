// internal/models/product.go
package models

// ProductDraft is the create payload for a product.
type ProductDraft struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Image         string `json:"image"`
	OriginalPrice Money  `json:"originalPrice"`
	CurrentPrice  Money  `json:"currentPrice"`
	Category      string `json:"category"`
}

// Product is immutable once created.
type Product struct {
	ID int64 `json:"id"`
	ProductDraft
}
