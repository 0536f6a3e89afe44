package handlers

import (
	"errors"
	"net/http"

	shopRepo "barbershop/database/repository/shop"
	"barbershop/services/auth"
	"barbershop/services/booking"
	"barbershop/services/catalog"
	"barbershop/services/payment"
	"barbershop/services/reports"
	"barbershop/services/shop"
	"barbershop/services/support"
	"barbershop/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	var (
		missing    *booking.MissingFieldsError
		input      *booking.InputError
		validation *catalog.ValidationError
	)
	switch {
	case errors.As(err, &missing):
		utils.JSONFieldsError(c, http.StatusUnprocessableEntity, "Booking is incomplete", missing.Fields)
	case errors.Is(err, booking.ErrPaymentMethodDisabled):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Payment method not available", err.Error())
	case errors.As(err, &input):
		utils.JSONFieldsError(c, http.StatusBadRequest, input.Message, []string{input.Field})
	case errors.As(err, &validation):
		utils.JSONFieldsError(c, http.StatusBadRequest, validation.Message, []string{validation.Field})
	case errors.Is(err, booking.ErrInvalidSession),
		errors.Is(err, shop.ErrInvalidConfig),
		errors.Is(err, reports.ErrInvalidRange),
		errors.Is(err, support.ErrEmptyMessage),
		errors.Is(err, support.ErrMessageTooLong),
		errors.Is(err, support.ErrUnknownSender),
		errors.Is(err, auth.ErrInvalidOwner):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, catalog.ErrProfessionalNotFound),
		errors.Is(err, shopRepo.ErrNotificationNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, support.ErrSenderNotAllowed):
		utils.JSONError(c, http.StatusForbidden, "Sender not allowed", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
	case errors.Is(err, auth.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "Email already registered", "")
	case errors.Is(err, payment.ErrPaymentFailed):
		utils.JSONError(c, http.StatusPaymentRequired, "Payment failed", err.Error())
	default:
		getLogger(c).Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
}
