package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iiTONELOC/web-app-auth-server/logger"
)

// RequestIDHeader carries the correlation id on requests and responses.
const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with a correlation id. An inbound header
// value is reused so callers and proxies stay correlated; otherwise a fresh
// uuid is minted. The id is echoed on the response and stored under
// logger.FieldRequestID for the request logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logger.FieldRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
