package httpserver

import (
	"context"
	"errors"

	"lemongrove/internal/domain"
	cartsvc "lemongrove/internal/service/cart"
	catalogsvc "lemongrove/internal/service/catalog"
	checkoutsvc "lemongrove/internal/service/checkout"
	identitysvc "lemongrove/internal/service/identity"
	ordersvc "lemongrove/internal/service/order"
)

type CatalogService interface {
	List(ctx context.Context, filter string) ([]domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	ProposeRename(ctx context.Context, id int, newName string) (*catalogsvc.Change, error)
	ProposeDelete(ctx context.Context, id int) (*catalogsvc.Change, error)
	Confirm(ctx context.Context, token string) (*catalogsvc.Change, error)
	Cancel(ctx context.Context, token string) (*catalogsvc.Change, error)
}

type CartService interface {
	AddToCart(ctx context.Context, sessionID string, productID int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID, delta int) (*domain.Cart, error)
	RemoveFromCart(ctx context.Context, sessionID string, productID int) (*domain.Cart, error)
	View(ctx context.Context, sessionID string) (*cartsvc.View, error)
}

type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req checkoutsvc.Request) (*checkoutsvc.Result, error)
}

type DiscountService interface {
	Apply(ctx context.Context, code string) (*domain.DiscountCode, error)
	List(ctx context.Context) []domain.DiscountCode
}

type OrderService interface {
	Find(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, field domain.StatusField, value string) (*domain.Order, error)
	Stats(ctx context.Context) (*ordersvc.Stats, error)
}

type IdentityService interface {
	Login(ctx context.Context, sessionID string, in identitysvc.LoginInput) (*domain.Identity, error)
	Register(ctx context.Context, sessionID string, in identitysvc.RegisterInput) (*domain.Identity, error)
	Logout(ctx context.Context, sessionID string) error
	Current(ctx context.Context, sessionID string) (*domain.Identity, error)
}

type WishlistService interface {
	Toggle(ctx context.Context, sessionID string, productID int) (bool, error)
	List(ctx context.Context, sessionID string) ([]int, error)
}

type SessionService interface {
	Issue(ctx context.Context) (token, sessionID string, err error)
	Lookup(ctx context.Context, token string) (string, error)
	TTLSeconds() int
}

// Deps holds the services behind the routes.
type Deps struct {
	CatalogSvc  CatalogService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	DiscountSvc DiscountService
	OrderSvc    OrderService
	IdentitySvc IdentityService
	WishlistSvc WishlistService
	SessionSvc  SessionService
}

func (d Deps) validate() error {
	switch {
	case d.CatalogSvc == nil:
		return errors.New("catalog service required")
	case d.CartSvc == nil:
		return errors.New("cart service required")
	case d.CheckoutSvc == nil:
		return errors.New("checkout service required")
	case d.DiscountSvc == nil:
		return errors.New("discount service required")
	case d.OrderSvc == nil:
		return errors.New("order service required")
	case d.IdentitySvc == nil:
		return errors.New("identity service required")
	case d.WishlistSvc == nil:
		return errors.New("wishlist service required")
	case d.SessionSvc == nil:
		return errors.New("session service required")
	}
	return nil
}
