// Package memory is the ephemeral storage backend. All state lives in the
// process and is lost on restart.
//
// The mutex only keeps the maps consistent. Two concurrent updates of the
// same campaign are last-write-wins: each merges onto whatever it read.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	"github.com/jenny-yujl/marketingTrain/internal/models"
)

const Backend = "memory"

type Store struct {
	mu             sync.RWMutex
	campaigns      map[int64]*models.Campaign
	products       map[int64]*models.Product
	nextCampaignID int64
	nextProductID  int64
	now            func() time.Time
}

var _ interfaces.Storage = (*Store)(nil)

// New returns a store preloaded with the given products, ids starting at 1.
func New(products ...models.ProductDraft) *Store {
	s := &Store{
		campaigns:      make(map[int64]*models.Campaign),
		products:       make(map[int64]*models.Product),
		nextCampaignID: 1,
		nextProductID:  1,
		now:            func() time.Time { return time.Now().UTC() },
	}
	for i := range products {
		s.insertProduct(&products[i])
	}
	return s
}

// SetClock replaces the time source used for createdAt/updatedAt.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Backend() string { return Backend }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) GetCampaign(ctx context.Context, id int64) (*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %d: %w", id, interfaces.ErrNotFound)
	}
	return c.Clone(), nil
}

func (s *Store) ListCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateCampaign(ctx context.Context, draft *models.CampaignDraft) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := &models.Campaign{
		ID:            s.nextCampaignID,
		CampaignDraft: *draft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// Clone detaches the caller's slices from the stored record.
	c = c.Clone()
	c.CampaignDraft.Normalize()
	s.nextCampaignID++
	s.campaigns[c.ID] = c
	return c.Clone(), nil
}

func (s *Store) UpdateCampaign(ctx context.Context, id int64, patch *models.CampaignPatch) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %d: %w", id, interfaces.ErrNotFound)
	}
	updated := existing.Clone()
	patch.ApplyTo(updated)
	updated.UpdatedAt = s.now()
	s.campaigns[id] = updated
	return updated.Clone(), nil
}

func (s *Store) DeleteCampaign(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.campaigns, id)
	return nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, interfaces.ErrNotFound)
	}
	out := *p
	return &out, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Product, 0, len(s.products))
	for _, p := range s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.insertProduct(draft)
	out := *p
	return &out, nil
}

func (s *Store) insertProduct(draft *models.ProductDraft) *models.Product {
	p := &models.Product{ID: s.nextProductID, ProductDraft: *draft}
	s.nextProductID++
	s.products[p.ID] = p
	return p
}
