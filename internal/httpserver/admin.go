package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lemongrove/internal/domain"
)

type statusRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *handlers) adminOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": orders})
}

func (h *handlers) adminStats(c *gin.Context) {
	st, err := h.deps.OrderSvc.Stats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "field and value are required")
		return
	}
	o, err := h.deps.OrderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.StatusField(req.Field), req.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handlers) proposeRename(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid body")
		return
	}
	change, err := h.deps.CatalogSvc.ProposeRename(c.Request.Context(), id, req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, change)
}

func (h *handlers) proposeDelete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	change, err := h.deps.CatalogSvc.ProposeDelete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, change)
}

func (h *handlers) confirmChange(c *gin.Context) {
	change, err := h.deps.CatalogSvc.Confirm(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"change": change, "applied": true})
}

func (h *handlers) cancelChange(c *gin.Context) {
	change, err := h.deps.CatalogSvc.Cancel(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"change": change, "applied": false})
}
