package routes

import (
	"barbershop/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the public, shop-scoped booking wizard.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	shop := r.Group("/api/shops/:shopID")
	{
		shop.GET("/services", hb.Booking.ListServices)
		shop.GET("/professionals", hb.Booking.ListProfessionals)
		shop.GET("/payment-methods", hb.Booking.PaymentMethods)
	}

	// Steps 1-4 each write their own fields; confirm covers payment and
	// finalization.
	booking := shop.Group("/booking")
	{
		booking.POST("", hb.Booking.StartSession)
		booking.GET("/:sessionID", hb.Booking.GetDraft)
		booking.PUT("/:sessionID/service", hb.Booking.SelectService)
		booking.PUT("/:sessionID/professional", hb.Booking.SelectProfessional)
		booking.PUT("/:sessionID/datetime", hb.Booking.SelectDateTime)
		booking.PUT("/:sessionID/client", hb.Booking.SetClient)
		booking.PATCH("/:sessionID", hb.Booking.MergeDraft)
		booking.POST("/:sessionID/confirm", hb.Booking.ConfirmBooking)
		booking.DELETE("/:sessionID", hb.Booking.CancelSession)
	}
}
