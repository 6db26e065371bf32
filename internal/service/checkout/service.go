package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"lemongrove/internal/domain"
	"lemongrove/internal/snapshot"
	"lemongrove/internal/validation"
)

// InvalidCodeNotice is reported when the submitted discount code is unknown.
const InvalidCodeNotice = "invalid discount code"

const maxIDAttempts = 10

// Request is the checkout form.
type Request struct {
	Name          string               `json:"name" validate:"required"`
	Email         string               `json:"email" validate:"required,email"`
	Phone         string               `json:"phone" validate:"required"`
	Address       string               `json:"address" validate:"required"`
	IsGift        bool                 `json:"isGift"`
	GiftMessage   string               `json:"giftMessage" validate:"max=500"`
	DiscountCode  string               `json:"discountCode"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" validate:"required,oneof=easypaisa jazzcash bank cod"`
}

func (r *Request) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.GiftMessage = strings.TrimSpace(r.GiftMessage)
	r.DiscountCode = strings.TrimSpace(r.DiscountCode)
	r.PaymentMethod = domain.PaymentMethod(strings.ToLower(strings.TrimSpace(string(r.PaymentMethod))))
}

// Result is a placed order plus an optional notice for the shopper.
type Result struct {
	Order  domain.Order `json:"order"`
	Notice string       `json:"notice,omitempty"`
}

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	Stage(b *snapshot.Batch, products []domain.Product) error
}

type orderRepo interface {
	List(ctx context.Context) ([]domain.Order, error)
	Stage(b *snapshot.Batch, orders []domain.Order) error
}

type cartRepo interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Stage(b *snapshot.Batch, c *domain.Cart) error
}

type discountLookup interface {
	Apply(ctx context.Context, code string) (*domain.DiscountCode, error)
}

type identityLookup interface {
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)
}

type Service struct {
	store     snapshot.Store
	products  productRepo
	orders    orderRepo
	carts     cartRepo
	discounts discountLookup
	identity  identityLookup
	mu        sync.Locker
	shipping  decimal.Decimal
	logger    *zap.Logger
	now       func() time.Time
	intn      func(n int) int
}

// Deps wires the records a checkout reads and writes.
type Deps struct {
	Store     snapshot.Store
	Products  productRepo
	Orders    orderRepo
	Carts     cartRepo
	Discounts discountLookup
	Identity  identityLookup
	Lock      sync.Locker
	Shipping  decimal.Decimal
	Logger    *zap.Logger
}

type Option func(*Service)

// WithClock overrides the time source used for order ids and dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand overrides the random suffix source of order ids.
func WithRand(intn func(n int) int) Option {
	return func(s *Service) { s.intn = intn }
}

func New(d Deps, opts ...Option) *Service {
	s := &Service{
		store:     d.Store,
		products:  d.Products,
		orders:    d.Orders,
		carts:     d.Carts,
		discounts: d.Discounts,
		identity:  d.Identity,
		mu:        d.Lock,
		shipping:  d.Shipping,
		logger:    d.Logger,
		now:       time.Now,
		intn:      rand.Intn,
	}
	if s.mu == nil {
		s.mu = &sync.Mutex{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout turns the session's cart into an order. Stock decrements, the new
// ledger and the emptied cart are committed in one batch; on any error nothing
// is written.
func (s *Service) Checkout(ctx context.Context, sessionID string, req Request) (*Result, error) {
	req.normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	subtotal := c.Subtotal()
	discount := decimal.Zero
	appliedCode := ""
	if req.DiscountCode != "" {
		code, err := s.discounts.Apply(ctx, req.DiscountCode)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			res.Notice = InvalidCodeNotice
		case err != nil:
			return nil, err
		default:
			discount = domain.PercentOf(subtotal, code.Percent)
			appliedCode = code.Code
		}
	}

	id, err := s.nextID(orders)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Qty:       l.Quantity,
			Price:     l.Price,
		})
		idx := domain.FindProduct(products, l.ProductID)
		if idx < 0 {
			continue
		}
		remaining := products[idx].Stock - l.Quantity
		if remaining < 0 {
			s.logger.Warn("checkout: stock exhausted",
				zap.String("session", sessionID),
				zap.Int("product", l.ProductID),
				zap.Int("stock", products[idx].Stock),
				zap.Int("qty", l.Quantity))
			return nil, fmt.Errorf("%s: %w", products[idx].Name, domain.ErrStockExceeded)
		}
		products[idx].Stock = remaining
	}

	now := s.now()
	order := domain.Order{
		ID:        id,
		Date:      now.Format(domain.OrderDateLayout),
		CreatedAt: now.UTC(),
		Customer: domain.Customer{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		},
		Gift:          &domain.Gift{IsGift: req.IsGift},
		Items:         items,
		Subtotal:      subtotal,
		Shipping:      s.shipping,
		Discount:      discount,
		DiscountCode:  appliedCode,
		Total:         subtotal.Add(s.shipping).Sub(discount),
		PaymentMethod: req.PaymentMethod,
		Status:        domain.InitialStatus(req.PaymentMethod),
	}
	if req.IsGift {
		order.Gift.Message = req.GiftMessage
	}
	if s.identity != nil {
		who, err := s.identity.Get(ctx, sessionID)
		switch {
		case err == nil:
			userID := who.ID
			order.UserID = &userID
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	ledger := make([]domain.Order, 0, len(orders)+1)
	ledger = append(ledger, order)
	ledger = append(ledger, orders...)

	batch := snapshot.NewBatch()
	if err := s.products.Stage(batch, products); err != nil {
		return nil, err
	}
	if err := s.orders.Stage(batch, ledger); err != nil {
		return nil, err
	}
	if err := s.carts.Stage(batch, &domain.Cart{SessionID: sessionID, Lines: []domain.CartLine{}}); err != nil {
		return nil, err
	}
	if err := batch.Commit(ctx, s.store); err != nil {
		s.logger.Error("checkout: commit failed", zap.String("order", id), zap.Error(err))
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	s.logger.Info("checkout: order placed",
		zap.String("order", id),
		zap.String("session", sessionID),
		zap.Int("items", len(items)),
		zap.String("total", order.Total.StringFixed(domain.MoneyPlaces)),
		zap.String("paymentMethod", string(order.PaymentMethod)))
	res.Order = order
	return res, nil
}

func (s *Service) nextID(existing []domain.Order) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := fmt.Sprintf("ORD-%06d-%d", s.now().UnixMilli()%1_000_000, s.intn(1000))
		taken := false
		for _, o := range existing {
			if domain.SameOrderID(o.ID, id) {
				taken = true
				break
			}
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("allocate order id after %d attempts: %w", maxIDAttempts, domain.ErrAlreadyExists)
}
