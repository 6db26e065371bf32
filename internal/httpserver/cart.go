package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"lemongrove/internal/domain"
	checkoutsvc "lemongrove/internal/service/checkout"
)

type addItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
}

type updateItemRequest struct {
	Delta int `json:"delta"`
}

func (h *handlers) respondCart(c *gin.Context, status int) {
	view, err := h.deps.CartSvc.View(c.Request.Context(), sessionFromContext(c.Request.Context()))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(status, view)
}

func (h *handlers) getCart(c *gin.Context) {
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "productId is required")
		return
	}
	if _, err := h.deps.CartSvc.AddToCart(c.Request.Context(), sessionFromContext(c.Request.Context()), req.ProductID); err != nil {
		h.writeError(c, err)
		return
	}
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	productID, ok := intParam(c, "productId")
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid body")
		return
	}
	if _, err := h.deps.CartSvc.UpdateQuantity(c.Request.Context(), sessionFromContext(c.Request.Context()), productID, req.Delta); err != nil {
		h.writeError(c, err)
		return
	}
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	productID, ok := intParam(c, "productId")
	if !ok {
		return
	}
	if _, err := h.deps.CartSvc.RemoveFromCart(c.Request.Context(), sessionFromContext(c.Request.Context()), productID); err != nil {
		h.writeError(c, err)
		return
	}
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) checkout(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := sessionFromContext(ctx)

	var req checkoutsvc.Request
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeBadRequest(c, "invalid checkout body: "+err.Error())
		return
	}

	view, err := h.deps.CartSvc.View(ctx, sessionID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if len(view.Lines) == 0 {
		h.writeError(c, domain.NewValidationError("cart", "cart is empty"))
		return
	}

	res, err := h.deps.CheckoutSvc.Checkout(ctx, sessionID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
