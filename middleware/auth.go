package middleware

import (
	"net/http"
	"strings"

	"barbershop/utils"

	"github.com/gin-gonic/gin"
)

// OwnerAuthMiddleware requires a valid owner bearer token and stores the
// owner and shop IDs in the context.
func OwnerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}

		c.Set(utils.CtxOwnerIDKey, claims.OwnerID)
		c.Set(utils.CtxShopIDKey, claims.ShopID)
		c.Next()
	}
}
