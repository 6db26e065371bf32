package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"lemongrove/internal/domain"
)

type errorItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Errors     []errorItem `json:"errors"`
}

func writeErrorBody(c *gin.Context, status int, code, message string, items ...errorItem) {
	if len(items) == 0 {
		items = []errorItem{{Code: code, Message: message}}
	}
	c.JSON(status, errorResponse{StatusCode: status, Message: message, Errors: items})
}

func writeUnauthorized(c *gin.Context, message string) {
	writeErrorBody(c, http.StatusUnauthorized, "InvalidToken", message)
}

func writeBadRequest(c *gin.Context, message string) {
	writeErrorBody(c, http.StatusBadRequest, "InvalidInput", message)
}

// writeError maps domain errors onto HTTP statuses.
func (h *handlers) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		items := make([]errorItem, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			msg := f.Message
			if f.Field != "" {
				msg = f.Field + ": " + f.Message
			}
			items = append(items, errorItem{Code: "InvalidField", Message: msg})
		}
		writeErrorBody(c, http.StatusBadRequest, "InvalidInput", verr.Error(), items...)
	case errors.Is(err, domain.ErrValidation):
		writeBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(c, http.StatusNotFound, "ResourceNotFound", err.Error())
	case errors.Is(err, domain.ErrStockExceeded):
		writeErrorBody(c, http.StatusConflict, "StockExceeded", err.Error())
	default:
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		writeErrorBody(c, http.StatusInternalServerError, "General", "internal error")
	}
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		writeBadRequest(c, name+" must be an integer")
		return 0, false
	}
	return v, true
}
