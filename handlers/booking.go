package handlers

import (
	"net/http"

	"barbershop/models"
	"barbershop/services/booking"
	"barbershop/services/catalog"
	"barbershop/services/shop"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the client-facing booking wizard.
type BookingHandler struct {
	Booking booking.BookingSessionService
	Catalog catalog.CatalogService
	Shop    shop.ShopService
}

func NewBookingHandler(b booking.BookingSessionService, cat catalog.CatalogService, s shop.ShopService) *BookingHandler {
	return &BookingHandler{Booking: b, Catalog: cat, Shop: s}
}

// ListServices returns the bookable services of a shop.
func (h *BookingHandler) ListServices(c *gin.Context) {
	services, err := h.Catalog.Services(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondError(c, err)
		return
	}
	active := make([]models.Service, 0, len(services))
	for _, s := range services {
		if s.Active {
			active = append(active, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{"services": active})
}

func (h *BookingHandler) ListProfessionals(c *gin.Context) {
	pros, err := h.Catalog.Professionals(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondError(c, err)
		return
	}
	active := make([]models.Professional, 0, len(pros))
	for _, p := range pros {
		if p.Active {
			active = append(active, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"professionals": active})
}

// PaymentMethods lists what the payment step may offer.
func (h *BookingHandler) PaymentMethods(c *gin.Context) {
	cfg, err := h.Shop.PaymentsConfig(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"methods": cfg.EnabledMethods, "pixKey": cfg.PixKey, "currency": cfg.Currency})
}

func (h *BookingHandler) StartSession(c *gin.Context) {
	shopID := c.Param("shopID")
	sessionID, draft, err := h.Booking.StartSession(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Booking session started", zap.String("shopID", shopID), zap.String("sessionID", sessionID))
	c.JSON(http.StatusCreated, gin.H{"sessionId": sessionID, "draft": draft})
}

func (h *BookingHandler) GetDraft(c *gin.Context) {
	draft, err := h.Booking.GetDraft(c.Request.Context(), c.Param("shopID"), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *BookingHandler) SelectService(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.Booking.SelectService(c.Request.Context(), c.Param("shopID"), c.Param("sessionID"), input.ServiceID)
	h.respondDraft(c, draft, err)
}

func (h *BookingHandler) SelectProfessional(c *gin.Context) {
	var input struct {
		ProfessionalID string `json:"professionalId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.Booking.SelectProfessional(c.Request.Context(), c.Param("shopID"), c.Param("sessionID"), input.ProfessionalID)
	h.respondDraft(c, draft, err)
}

func (h *BookingHandler) SelectDateTime(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.Booking.SelectDateTime(c.Request.Context(), c.Param("shopID"), c.Param("sessionID"), input.Date, input.Time)
	h.respondDraft(c, draft, err)
}

func (h *BookingHandler) SetClient(c *gin.Context) {
	var input models.ClientInfo
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.Booking.SetClient(c.Request.Context(), c.Param("shopID"), c.Param("sessionID"), input)
	h.respondDraft(c, draft, err)
}

// MergeDraft accepts any subset of the draft's fields.
func (h *BookingHandler) MergeDraft(c *gin.Context) {
	var patch models.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.Booking.Merge(c.Request.Context(), c.Param("shopID"), c.Param("sessionID"), patch)
	h.respondDraft(c, draft, err)
}

// ConfirmBooking finalizes the draft into an appointment.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	// An empty body picks the shop's default method.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}
	}

	appt, err := h.Booking.Finalize(c.Request.Context(), c.Param("shopID"), c.Param("sessionID"), input.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Booking.CancelSession(c.Request.Context(), c.Param("shopID"), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) respondDraft(c *gin.Context, draft *models.BookingDraft, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}
