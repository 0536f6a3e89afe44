package handlers

import (
	"net/http"

	"barbershop/models"
	"barbershop/services/booking"
	"barbershop/services/catalog"
	"barbershop/services/shop"

	"github.com/gin-gonic/gin"
)

// ShopHandler serves the owner's management screens. Every route runs
// behind OwnerAuthMiddleware and acts on the token's shop.
type ShopHandler struct {
	Shop    shop.ShopService
	Catalog catalog.CatalogService
	Booking booking.BookingSessionService
}

func NewShopHandler(s shop.ShopService, cat catalog.CatalogService, b booking.BookingSessionService) *ShopHandler {
	return &ShopHandler{Shop: s, Catalog: cat, Booking: b}
}

func (h *ShopHandler) ListAppointments(c *gin.Context) {
	appts, err := h.Booking.Appointments(c.Request.Context(), ownerShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *ShopHandler) GetPayments(c *gin.Context) {
	cfg, err := h.Shop.PaymentsConfig(c.Request.Context(), ownerShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *ShopHandler) UpdatePayments(c *gin.Context) {
	var input models.PaymentsConfig
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	cfg, err := h.Shop.UpdatePaymentsConfig(c.Request.Context(), ownerShopID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *ShopHandler) GetNotificationSettings(c *gin.Context) {
	settings, err := h.Shop.NotificationSettings(c.Request.Context(), ownerShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *ShopHandler) UpdateNotificationSettings(c *gin.Context) {
	var input models.NotificationSettings
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	settings, err := h.Shop.UpdateNotificationSettings(c.Request.Context(), ownerShopID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *ShopHandler) ListNotifications(c *gin.Context) {
	feed, err := h.Shop.Notifications(c.Request.Context(), ownerShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	unread := 0
	for _, n := range feed {
		if !n.Read {
			unread++
		}
	}
	if feed == nil {
		feed = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": feed, "unread": unread})
}

func (h *ShopHandler) MarkNotificationRead(c *gin.Context) {
	if err := h.Shop.MarkNotificationRead(c.Request.Context(), ownerShopID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShopHandler) MarkAllNotificationsRead(c *gin.Context) {
	n, err := h.Shop.MarkAllNotificationsRead(c.Request.Context(), ownerShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": n})
}

// ReplaceServices overwrites the shop's whole service menu.
func (h *ShopHandler) ReplaceServices(c *gin.Context) {
	var input struct {
		Services []models.Service `json:"services" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	services, err := h.Catalog.ReplaceServices(c.Request.Context(), ownerShopID(c), input.Services)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *ShopHandler) ListAllServices(c *gin.Context) {
	services, err := h.Catalog.Services(c.Request.Context(), ownerShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
