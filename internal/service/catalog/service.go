package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"lemongrove/internal/domain"
)

// DefaultChangeTTL bounds how long a proposed change can be confirmed.
const DefaultChangeTTL = 5 * time.Minute

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	SaveAll(ctx context.Context, products []domain.Product) error
}

type Service struct {
	repo    productRepo
	mu      sync.Locker
	pending *pendingChanges
	ttl     time.Duration
	logger  *zap.Logger
}

func New(repo productRepo, mu sync.Locker, ttl time.Duration, logger *zap.Logger) *Service {
	return newService(repo, mu, ttl, logger, time.Now)
}

func newService(repo productRepo, mu sync.Locker, ttl time.Duration, logger *zap.Logger, now func() time.Time) *Service {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	if ttl <= 0 {
		ttl = DefaultChangeTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, mu: mu, pending: newPendingChanges(now), ttl: ttl, logger: logger}
}

// List returns products whose name or category contains filter, ignoring
// case. An empty filter matches everything.
func (s *Service) List(ctx context.Context, filter string) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return products, nil
	}
	out := []domain.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), filter) || strings.Contains(strings.ToLower(p.Category), filter) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ProposeRename records a rename awaiting confirmation.
func (s *Service) ProposeRename(ctx context.Context, id int, newName string) (*Change, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if newName == p.Name {
		return nil, domain.NewValidationError("name", "must differ from the current name")
	}
	c, err := s.pending.Add(Change{Kind: ChangeRename, ProductID: id, ProductName: p.Name, NewName: newName}, s.ttl)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ProposeDelete records a deletion awaiting confirmation.
func (s *Service) ProposeDelete(ctx context.Context, id int) (*Change, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.pending.Add(Change{Kind: ChangeDelete, ProductID: id, ProductName: p.Name}, s.ttl)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Confirm applies a pending change. Unknown and expired tokens are
// domain.ErrNotFound, as is a product that vanished since the proposal. Cart
// lines of a deleted product are left in place.
func (s *Service) Confirm(ctx context.Context, token string) (*Change, error) {
	c, ok := s.pending.Take(token)
	if !ok {
		return nil, domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.List(ctx)
	if err != nil {
		s.pending.Restore(c)
		return nil, err
	}
	idx := domain.FindProduct(products, c.ProductID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	switch c.Kind {
	case ChangeRename:
		products[idx].Name = c.NewName
	case ChangeDelete:
		products = append(products[:idx], products[idx+1:]...)
	}
	if err := s.repo.SaveAll(ctx, products); err != nil {
		s.pending.Restore(c)
		return nil, err
	}
	s.logger.Info("catalog change applied",
		zap.String("kind", string(c.Kind)),
		zap.Int("product", c.ProductID),
		zap.String("name", c.ProductName),
		zap.String("newName", c.NewName))
	return &c, nil
}

// Cancel discards a pending change without touching the catalog.
func (s *Service) Cancel(_ context.Context, token string) (*Change, error) {
	c, ok := s.pending.Take(token)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}
