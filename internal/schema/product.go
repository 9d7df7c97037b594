package schema

import "github.com/jenny-yujl/marketingTrain/internal/models"

// DecodeProduct validates a product create payload. Every field is required.
func DecodeProduct(body []byte) (*models.ProductDraft, error) {
	d, err := newDecoder(body, false)
	if err != nil {
		return nil, err
	}

	name := d.str("name", true)
	description := d.str("description", true)
	image := d.str("image", true)
	originalPrice := d.money("originalPrice", true)
	currentPrice := d.money("currentPrice", true)
	category := d.str("category", true)

	if image != nil {
		d.check("image", *image, "max=2048")
	}
	if err := d.err(); err != nil {
		return nil, err
	}

	return &models.ProductDraft{
		Name:          *name,
		Description:   *description,
		Image:         *image,
		OriginalPrice: *originalPrice,
		CurrentPrice:  *currentPrice,
		Category:      *category,
	}, nil
}
