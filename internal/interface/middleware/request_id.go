package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CtxRequestIDKey = "request_id"
	HeaderRequestID = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an id, reusing a sane
// X-Request-ID from the caller, and echoes it back in the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
