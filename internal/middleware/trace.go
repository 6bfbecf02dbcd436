package middleware

import (
	"smartrubbish/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceID tags every request with an id echoed in the X-Trace-ID header and the response envelope.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.New().String()
		c.Set(utils.TraceIDKey, traceID)
		c.Writer.Header().Set("X-Trace-ID", traceID)
		c.Next()
	}
}
