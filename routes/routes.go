package routes

import (
	"net/http"
	"time"

	"barbershop/handlers"
	"barbershop/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers owner login and sign-up.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/auth")
	{
		api.POST("/login", hb.Auth.Login)
		api.POST("/register", hb.Auth.Register)
	}
}

// RegisterShopRoutes registers the owner's management endpoints. All of
// them act on the shop carried by the bearer token.
func RegisterShopRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.OwnerAuthMiddleware())
	{
		api.GET("/appointments", hb.Shop.ListAppointments)

		shop := api.Group("/shop")
		shop.GET("/payments", hb.Shop.GetPayments)
		shop.PUT("/payments", hb.Shop.UpdatePayments)
		shop.GET("/notification-settings", hb.Shop.GetNotificationSettings)
		shop.PUT("/notification-settings", hb.Shop.UpdateNotificationSettings)
		shop.GET("/notifications", hb.Shop.ListNotifications)
		shop.POST("/notifications/read-all", hb.Shop.MarkAllNotificationsRead)
		shop.POST("/notifications/:id/read", hb.Shop.MarkNotificationRead)
		shop.GET("/services", hb.Shop.ListAllServices)
		shop.PUT("/services", hb.Shop.ReplaceServices)
		shop.GET("/reports", hb.Reports.GetReport)
		shop.POST("/chat", hb.Support.OwnerSend)
	}

	employees := r.Group("/employees")
	employees.Use(middleware.OwnerAuthMiddleware())
	{
		employees.GET("", hb.Employees.List)
		employees.POST("", hb.Employees.Create)
		employees.GET("/:id", hb.Employees.Get)
		employees.PUT("/:id", hb.Employees.Update)
		employees.DELETE("/:id", hb.Employees.Delete)
	}
}

// RegisterSupportRoutes registers the help center and chat.
func RegisterSupportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/support/articles", hb.Support.Articles)

	chat := r.Group("/api/shops/:shopID/chat")
	{
		chat.GET("", hb.Support.Messages)
		chat.POST("", hb.Support.Send)
		chat.GET("/stream", hb.Support.Stream)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", func(c *gin.Context) {
		if hb.Health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		healthy, details := hb.Health()
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dependencies": details})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": details})
	})
}

// RegisterMetricsRoute exposes the prometheus registry.
func RegisterMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gatherer prometheus.Gatherer) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterMetricsRoute(r, gatherer)
	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterShopRoutes(r, hb)
	RegisterSupportRoutes(r, hb)
}
