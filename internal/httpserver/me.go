package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"lemongrove/internal/domain"
	identitysvc "lemongrove/internal/service/identity"
)

func (h *handlers) me(c *gin.Context) {
	id, err := h.deps.IdentitySvc.Current(c.Request.Context(), sessionFromContext(c.Request.Context()))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, id)
}

func (h *handlers) login(c *gin.Context) {
	var in identitysvc.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, "invalid body")
		return
	}
	id, err := h.deps.IdentitySvc.Login(c.Request.Context(), sessionFromContext(c.Request.Context()), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, id)
}

func (h *handlers) register(c *gin.Context) {
	var in identitysvc.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, "invalid body")
		return
	}
	id, err := h.deps.IdentitySvc.Register(c.Request.Context(), sessionFromContext(c.Request.Context()), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, id)
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.IdentitySvc.Logout(c.Request.Context(), sessionFromContext(c.Request.Context())); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) myOrders(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := h.deps.IdentitySvc.Current(ctx, sessionFromContext(ctx))
	if errors.Is(err, domain.ErrNotFound) {
		writeUnauthorized(c, "login required")
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	orders, err := h.deps.OrderSvc.ListForUser(ctx, id.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": orders})
}

func (h *handlers) getWishlist(c *gin.Context) {
	ids, err := h.deps.WishlistSvc.List(c.Request.Context(), sessionFromContext(c.Request.Context()))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productIds": ids})
}

func (h *handlers) toggleWishlist(c *gin.Context) {
	productID, ok := intParam(c, "productId")
	if !ok {
		return
	}
	on, err := h.deps.WishlistSvc.Toggle(c.Request.Context(), sessionFromContext(c.Request.Context()), productID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productId": productID, "wishlisted": on})
}
