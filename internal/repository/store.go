// Package repository is the persistent storage backend. It runs the same
// queries against postgres and sqlite; list columns hold JSON text, flags
// hold 0/1 and amounts hold fixed two-digit decimal strings.
package repository

import (
	"context"
	"time"

	"github.com/jenny-yujl/marketingTrain/internal/db"
	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
)

type Store struct {
	*campaignRepository
	*productRepository
	db *db.Database
}

var _ interfaces.Storage = (*Store)(nil)

// NewStore wraps an open, migrated database.
func NewStore(database *db.Database) *Store {
	return NewStoreWithClock(database, defaultClock)
}

// NewStoreWithClock is NewStore with a fixed time source, for tests.
func NewStoreWithClock(database *db.Database, now func() time.Time) *Store {
	return &Store{
		campaignRepository: newCampaignRepository(database, now),
		productRepository:  newProductRepository(database),
		db:                 database,
	}
}

// defaultClock truncates to microseconds, the finest resolution postgres
// keeps, so returned records equal what a later read yields.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s *Store) Backend() string { return string(s.db.Dialect) }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }
