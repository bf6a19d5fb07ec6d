// Package middleware holds the gin middleware shared by all routes.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the request correlation header. An incoming value is
// trusted and propagated; otherwise a fresh one is issued.
const HeaderRequestID = "X-Request-ID"

const ContextRequestID = "request_id"

// RequestID ensures every request carries a correlation ID, exposed both
// in the gin context and on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}
