package endpoint

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/llmcouncil/server"
)

var startTime = time.Now()

// Liveness confirms the process can serve HTTP.
func Liveness(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.RespondOK(c, gin.H{
			"status":  "alive",
			"service": serviceName,
			"uptime":  time.Since(startTime).Round(time.Second).String(),
		})
	}
}
