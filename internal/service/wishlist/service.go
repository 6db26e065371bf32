package wishlist

import (
	"context"
	"sync"
)

type wishlistRepo interface {
	Get(ctx context.Context, sessionID string) ([]int, error)
	Save(ctx context.Context, sessionID string, ids []int) error
}

// Service keeps a per-session set of product ids in insertion order. Ids are
// not checked against the catalog.
type Service struct {
	repo wishlistRepo
	mu   sync.Locker
}

func New(repo wishlistRepo, mu sync.Locker) *Service {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Service{repo: repo, mu: mu}
}

// Toggle flips membership of productID and reports whether it is now listed.
func (s *Service) Toggle(ctx context.Context, sessionID string, productID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	out := make([]int, 0, len(ids)+1)
	found := false
	for _, id := range ids {
		if id == productID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, productID)
	}
	if err := s.repo.Save(ctx, sessionID, out); err != nil {
		return false, err
	}
	return !found, nil
}

func (s *Service) Contains(ctx context.Context, sessionID string, productID int) (bool, error) {
	ids, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) List(ctx context.Context, sessionID string) ([]int, error) {
	return s.repo.Get(ctx, sessionID)
}
