// internal/interfaces/storage.go
package interfaces

import (
	"context"
	"errors"

	"github.com/jenny-yujl/marketingTrain/internal/models"
)

// ErrNotFound is returned (possibly wrapped) when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// CampaignStore is the campaign half of the storage capability set.
type CampaignStore interface {
	GetCampaign(ctx context.Context, id int64) (*models.Campaign, error)
	ListCampaigns(ctx context.Context) ([]*models.Campaign, error)
	CreateCampaign(ctx context.Context, draft *models.CampaignDraft) (*models.Campaign, error)
	// UpdateCampaign merges patch onto an existing campaign. It never
	// creates a record; an unknown id yields ErrNotFound.
	UpdateCampaign(ctx context.Context, id int64, patch *models.CampaignPatch) (*models.Campaign, error)
	// DeleteCampaign is idempotent: deleting an unknown id is not an error.
	DeleteCampaign(ctx context.Context, id int64) error
}

// ProductStore has no update or delete; products are immutable.
type ProductStore interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	CreateProduct(ctx context.Context, draft *models.ProductDraft) (*models.Product, error)
}

// Storage is implemented by the in-memory and the SQL backends.
type Storage interface {
	CampaignStore
	ProductStore
	// Backend names the selected implementation ("memory", "postgres", "sqlite").
	Backend() string
	Ping(ctx context.Context) error
}
