package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lemongrove/internal/domain"
)

type productList struct {
	Count   int              `json:"count"`
	Results []domain.Product `json:"results"`
}

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.CatalogSvc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, productList{Count: len(products), Results: products})
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	p, err := h.deps.CatalogSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) listDiscounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.deps.DiscountSvc.List(c.Request.Context())})
}

func (h *handlers) applyDiscount(c *gin.Context) {
	code, err := h.deps.DiscountSvc.Apply(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

func (h *handlers) trackOrder(c *gin.Context) {
	o, err := h.deps.OrderSvc.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handlers) createSession(c *gin.Context) {
	token, sessionID, err := h.deps.SessionSvc.Issue(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":     token,
		"sessionId": sessionID,
		"expiresIn": h.deps.SessionSvc.TTLSeconds(),
	})
}
