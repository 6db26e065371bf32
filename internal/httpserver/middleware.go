package httpserver

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	sessionsvc "lemongrove/internal/service/session"
)

type ctxKey string

const sessionCtxKey ctxKey = "session"

// sessionMiddleware resolves the session token header and stores the session
// id on the request context. Only an unknown or expired token is a 401.
func sessionMiddleware(h *handlers) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(SessionHeader))
		if token == "" {
			writeUnauthorized(c, "missing "+SessionHeader+" header")
			c.Abort()
			return
		}
		sessionID, err := h.deps.SessionSvc.Lookup(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, sessionsvc.ErrInvalidToken) {
				writeUnauthorized(c, "invalid or expired session")
			} else {
				h.writeError(c, err)
			}
			c.Abort()
			return
		}
		ctx := context.WithValue(c.Request.Context(), sessionCtxKey, sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func sessionFromContext(ctx context.Context) string {
	v, _ := ctx.Value(sessionCtxKey).(string)
	return v
}
