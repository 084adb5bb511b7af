package store

import (
	"context"

	"stockfolio/internal/model"
)

// MemoryStore holds the portfolio in memory, for tests and throwaway runs.
type MemoryStore struct {
	holdings []model.Holding
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{holdings: []model.Holding{}}
}

func (s *MemoryStore) Load(ctx context.Context) ([]model.Holding, error) {
	out := make([]model.Holding, len(s.holdings))
	copy(out, s.holdings)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, holdings []model.Holding) error {
	s.holdings = make([]model.Holding, len(holdings))
	copy(s.holdings, holdings)
	return nil
}
