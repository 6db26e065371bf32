package cart

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"lemongrove/internal/domain"
)

type Service struct {
	repo        cartRepo
	productRepo productRepo
	mu          sync.Locker
	now         func() time.Time
}

type cartRepo interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, c *domain.Cart) error
}

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// New builds the cart service. mu serialises every store mutation and should be
// shared with the other services writing the same store; nil gets a private
// mutex.
func New(repo cartRepo, productRepo productRepo, mu sync.Locker) *Service {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Service{repo: repo, productRepo: productRepo, mu: mu, now: time.Now}
}

// Line is a cart line enriched with live catalog state.
type Line struct {
	domain.CartLine
	Stock     int             `json:"stock"`
	Available bool            `json:"available"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// View is the cart as shown to the shopper.
type View struct {
	Lines     []Line          `json:"lineItems"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// AddToCart adds one unit of productID. A product not yet in the cart is added
// with quantity 1 regardless of stock; an existing line is incremented only
// while the new quantity stays within stock.
func (s *Service) AddToCart(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := domain.FindProduct(products, productID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	product := products[idx]

	c, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if li := c.Line(productID); li >= 0 {
		if c.Lines[li].Quantity+1 > product.Stock {
			return nil, domain.ErrStockExceeded
		}
		c.Lines[li].Quantity++
	} else {
		c.Lines = append(c.Lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  1,
			AddedAt:   s.now().UTC(),
		})
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity moves a line's quantity by delta. A result of zero or less
// removes the line. A line whose product was deleted counts as zero stock.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID, delta int) (*domain.Cart, error) {
	if delta == 0 {
		return nil, domain.NewValidationError("delta", "illegal quantity delta")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	li := c.Line(productID)
	if li < 0 {
		return nil, domain.ErrNotFound
	}
	current := c.Lines[li].Quantity
	if delta < 0 {
		if current+delta <= 0 {
			c.Remove(productID)
		} else {
			c.Lines[li].Quantity = current + delta
		}
	} else {
		products, err := s.productRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		stock := 0
		if idx := domain.FindProduct(products, productID); idx >= 0 {
			stock = products[idx].Stock
		}
		// Compared as headroom so a huge delta cannot wrap.
		if delta > stock-current {
			return nil, domain.ErrStockExceeded
		}
		c.Lines[li].Quantity = current + delta
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveFromCart drops the line for productID. Removing an absent line is not
// an error.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.Line(productID) < 0 {
		return c, nil
	}
	c.Remove(productID)
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Subtotal(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	c, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Subtotal(), nil
}

// View returns the cart lines with current stock and availability.
func (s *Service) View(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	view := &View{
		Lines:     make([]Line, 0, len(c.Lines)),
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
	for _, l := range c.Lines {
		line := Line{CartLine: l, LineTotal: domain.LineTotal(l.Price, l.Quantity)}
		if idx := domain.FindProduct(products, l.ProductID); idx >= 0 {
			line.Stock = products[idx].Stock
			line.Available = true
		}
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}
