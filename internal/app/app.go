// Package app wires repositories and services over one snapshot store.
package app

import (
	"sync"

	"go.uber.org/zap"
	"lemongrove/internal/config"
	"lemongrove/internal/httpserver"
	cartrepo "lemongrove/internal/repository/cart"
	identityrepo "lemongrove/internal/repository/identity"
	orderrepo "lemongrove/internal/repository/order"
	productrepo "lemongrove/internal/repository/product"
	tokenrepo "lemongrove/internal/repository/token"
	wishlistrepo "lemongrove/internal/repository/wishlist"
	"lemongrove/internal/seed"
	cartsvc "lemongrove/internal/service/cart"
	catalogsvc "lemongrove/internal/service/catalog"
	checkoutsvc "lemongrove/internal/service/checkout"
	discountsvc "lemongrove/internal/service/discount"
	identitysvc "lemongrove/internal/service/identity"
	ordersvc "lemongrove/internal/service/order"
	sessionsvc "lemongrove/internal/service/session"
	wishlistsvc "lemongrove/internal/service/wishlist"
	"lemongrove/internal/snapshot"
)

// Services is the full storefront service graph.
type Services struct {
	Products productrepo.Repository
	Orders   orderrepo.Repository
	Carts    cartrepo.Repository

	Catalog  *catalogsvc.Service
	Cart     *cartsvc.Service
	Checkout *checkoutsvc.Service
	Discount *discountsvc.Service
	Order    *ordersvc.Service
	Identity *identitysvc.Service
	Wishlist *wishlistsvc.Service
	Session  *sessionsvc.Service
}

// New builds every service over store. All mutating services share one lock
// so each operation sees and writes a consistent set of records.
func New(store snapshot.Store, cfg config.Config, logger *zap.Logger, opts ...checkoutsvc.Option) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	lock := &sync.Mutex{}

	products := productrepo.NewSnapshot(store, logger.Named("product"))
	orders := orderrepo.NewSnapshot(store, logger.Named("order"))
	carts := cartrepo.NewSnapshot(store, logger.Named("cart"))
	identities := identityrepo.NewSnapshot(store, logger.Named("identity"))
	wishlists := wishlistrepo.NewSnapshot(store, logger.Named("wishlist"))

	discounts := discountsvc.New(seed.Discounts())

	return &Services{
		Products: products,
		Orders:   orders,
		Carts:    carts,
		Catalog:  catalogsvc.New(products, lock, cfg.ChangeTTL, logger.Named("catalog")),
		Cart:     cartsvc.New(carts, products, lock),
		Checkout: checkoutsvc.New(checkoutsvc.Deps{
			Store:     store,
			Products:  products,
			Orders:    orders,
			Carts:     carts,
			Discounts: discounts,
			Identity:  identities,
			Lock:      lock,
			Shipping:  cfg.ShippingFee,
			Logger:    logger.Named("checkout"),
		}, opts...),
		Discount: discounts,
		Order:    ordersvc.New(orders, products, lock, logger.Named("order")),
		Identity: identitysvc.New(identities, logger.Named("identity")),
		Wishlist: wishlistsvc.New(wishlists, lock),
		Session:  sessionsvc.New(tokenrepo.NewSnapshot(store, logger.Named("session")), logger.Named("session")),
	}
}

// HTTPDeps exposes the services to the HTTP layer.
func (s *Services) HTTPDeps() httpserver.Deps {
	return httpserver.Deps{
		CatalogSvc:  s.Catalog,
		CartSvc:     s.Cart,
		CheckoutSvc: s.Checkout,
		DiscountSvc: s.Discount,
		OrderSvc:    s.Order,
		IdentitySvc: s.Identity,
		WishlistSvc: s.Wishlist,
		SessionSvc:  s.Session,
	}
}
