package order

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"lemongrove/internal/domain"
)

type orderRepo interface {
	List(ctx context.Context) ([]domain.Order, error)
	Find(ctx context.Context, id string) (*domain.Order, error)
	SaveAll(ctx context.Context, orders []domain.Order) error
}

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type Service struct {
	repo        orderRepo
	productRepo productRepo
	mu          sync.Locker
	logger      *zap.Logger
}

func New(repo orderRepo, productRepo productRepo, mu sync.Locker, logger *zap.Logger) *Service {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, productRepo: productRepo, mu: mu, logger: logger}
}

// Stats summarises the ledger for the admin dashboard.
type Stats struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Orders   int             `json:"orders"`
	Products int             `json:"products"`
}

// Find returns the order with the given id, ignoring case.
func (s *Service) Find(ctx context.Context, id string) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.Find(ctx, id)
}

// List returns every order, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// ListForUser returns the orders placed while userID was logged in.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Order{}
	for _, o := range orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// UpdateStatus sets one fulfillment field of an order. Other fields are left
// as they are.
func (s *Service) UpdateStatus(ctx context.Context, id string, field domain.StatusField, value string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range orders {
		if domain.SameOrderID(orders[i].ID, id) {
			idx = i
			break
		}
	}
	if idx < 0 {
		// A bad field or value is reported ahead of an unknown order.
		var probe domain.FulfillmentStatus
		if err := probe.Set(field, value); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}
	if err := orders[idx].Status.Set(field, value); err != nil {
		return nil, err
	}
	if err := s.repo.SaveAll(ctx, orders); err != nil {
		return nil, err
	}
	s.logger.Info("order status updated",
		zap.String("order", orders[idx].ID),
		zap.String("field", string(field)),
		zap.String("value", value))
	o := orders[idx]
	return &o, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.Total)
	}
	return &Stats{Revenue: revenue, Orders: len(orders), Products: len(products)}, nil
}
