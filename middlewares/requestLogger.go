package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

// RequestLogger stamps every request with a correlation id and logs the
// outcome with timing.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.Request.Header.Get("X-Correlation-ID")
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), correlationId)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Correlation-ID", correlationId)

		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":         c.Request.Method,
			"path":           c.FullPath(),
			"status":         c.Writer.Status(),
			"duration_ms":    time.Since(start).Milliseconds(),
			"correlation_id": correlationId,
		}
		// AuthMiddleware runs after this middleware and swaps c.Request, so
		// the authenticated user is visible here by completion time.
		if username, ok := utils.GetUserNameFromContext(c.Request.Context()); ok {
			fields["user"] = username
		}
		logger.WithFields(fields).Info("request completed")
	}
}
