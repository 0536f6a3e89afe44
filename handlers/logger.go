package handlers

import (
	"barbershop/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request logger set by middleware, falling back to
// the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(utils.CtxLoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// ownerShopID is the shop the authenticated owner manages.
func ownerShopID(c *gin.Context) string {
	return c.GetString(utils.CtxShopIDKey)
}
