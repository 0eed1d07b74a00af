package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/llmcouncil/observability"
	"github.com/kbukum/llmcouncil/version"
)

// Health reports the service and every checker's component health. A
// degraded component keeps the response at 200; a down one turns it 503.
func Health(serviceName string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth(serviceName, version.Get().Short()).
			Check(c.Request.Context(), checkers...)
		c.JSON(sh.HTTPStatus(), sh)
	}
}
