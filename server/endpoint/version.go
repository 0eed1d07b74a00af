package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/llmcouncil/server"
	"github.com/kbukum/llmcouncil/version"
)

// Version reports build information.
func Version() gin.HandlerFunc {
	return func(c *gin.Context) {
		server.RespondOK(c, version.Get())
	}
}
