package httpserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHeader carries the token issued by POST /api/sessions.
const SessionHeader = "X-Session-Token"

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, store Pinger, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(zap.NewStdLog(logger).Writer()), gin.Recovery())
	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  corsOrigins,
			AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", SessionHeader},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(store))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.POST("/sessions", h.createSession)
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/discounts", h.listDiscounts)
	api.GET("/discounts/:code", h.applyDiscount)
	api.GET("/orders/:id", h.trackOrder)

	shopper := api.Group("")
	shopper.Use(sessionMiddleware(h))
	shopper.GET("/cart", h.getCart)
	shopper.POST("/cart/items", h.addCartItem)
	shopper.PATCH("/cart/items/:productId", h.updateCartItem)
	shopper.DELETE("/cart/items/:productId", h.removeCartItem)
	shopper.POST("/checkout", h.checkout)
	shopper.GET("/me", h.me)
	shopper.POST("/me/login", h.login)
	shopper.POST("/me/register", h.register)
	shopper.POST("/me/logout", h.logout)
	shopper.GET("/me/orders", h.myOrders)
	shopper.GET("/wishlist", h.getWishlist)
	shopper.POST("/wishlist/:productId/toggle", h.toggleWishlist)

	admin := api.Group("/admin")
	admin.GET("/orders", h.adminOrders)
	admin.GET("/stats", h.adminStats)
	admin.PATCH("/orders/:id/status", h.updateOrderStatus)
	admin.POST("/products/:id/rename", h.proposeRename)
	admin.POST("/products/:id/delete", h.proposeDelete)
	admin.POST("/changes/:token/confirm", h.confirmChange)
	admin.POST("/changes/:token/cancel", h.cancelChange)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}
