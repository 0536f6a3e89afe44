package booking

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"barbershop/models"

	"go.uber.org/zap"
)

// Finalize turns the session's draft into an appointment. When a required
// field is missing nothing is written and the draft is left as it was.
func (s *DefaultBookingSessionService) Finalize(ctx context.Context, shopID, sessionID, paymentMethod string) (*models.Appointment, error) {
	log := s.logger().With(zap.String("shopID", shopID), zap.String("sessionID", sessionID))

	draft, err := s.GetDraft(ctx, shopID, sessionID)
	if err != nil {
		return nil, err
	}
	if missing := missingFields(draft); len(missing) > 0 {
		s.Metrics.Finalized("missing_fields")
		log.Info("finalize blocked", zap.Strings("missing", missing))
		return nil, &MissingFieldsError{Fields: missing}
	}

	cfg, err := s.Shop.PaymentsConfig(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("load payments config: %w", err)
	}
	method, err := resolvePaymentMethod(cfg, paymentMethod)
	if err != nil {
		s.Metrics.Finalized("payment_method")
		return nil, err
	}

	invoice, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
		ShopID:      shopID,
		Amount:      draft.Service.Price,
		Method:      method,
		Currency:    cfg.Currency,
		Idempotency: paymentKey(shopID, sessionID, draft),
		Metadata:    map[string]string{"sessionId": sessionID},
		Description: draft.Service.Name,
	})
	if err != nil {
		s.Metrics.Finalized("payment_failed")
		return nil, err
	}

	appt := buildAppointment(shopID, draft, method, s.now())
	appt.PaymentReference = invoice.PaymentID
	if appt.PaymentReference == "" {
		appt.PaymentReference = invoice.InvoiceID
	}

	if err := s.AppointmentRepo.Append(ctx, appt); err != nil {
		s.Metrics.Finalized("store_failed")
		// A card intent may already exist for this booking.
		log.Error("appointment not stored after payment",
			zap.String("invoice", invoice.InvoiceID),
			zap.String("paymentID", invoice.PaymentID),
			zap.Error(err),
		)
		return nil, err
	}
	// The appointment exists from here on; later failures are only logged.
	// Drafts can be built without StartSession, so the reminder scan learns
	// about the shop here.
	if err := s.Shop.Register(ctx, shopID); err != nil {
		log.Warn("failed to register shop", zap.Error(err))
	}
	if err := s.DraftRepo.Delete(ctx, shopID, sessionID); err != nil {
		log.Warn("failed to clear draft after finalize", zap.Error(err))
	}
	s.Metrics.Finalized("success")
	log.Info("appointment confirmed", zap.String("appointmentID", appt.ID), zap.String("method", method))

	if _, err := s.Shop.Notify(ctx, shopID, models.NotificationNewBooking,
		"Novo agendamento",
		fmt.Sprintf("%s agendou %s para %s %s", appt.ClientName, appt.ServiceName, draft.Date, draft.Time),
	); err != nil {
		log.Warn("failed to append booking notification", zap.Error(err))
	}
	return &appt, nil
}

func (s *DefaultBookingSessionService) Appointments(ctx context.Context, shopID string) ([]models.Appointment, error) {
	return s.AppointmentRepo.ListByShop(ctx, shopID)
}

func missingFields(d *models.BookingDraft) []string {
	var missing []string
	if d.Service == nil {
		missing = append(missing, "service")
	}
	if d.Client == nil {
		missing = append(missing, "client")
	}
	if d.Date == "" {
		missing = append(missing, "date")
	}
	if d.Time == "" {
		missing = append(missing, "time")
	}
	return missing
}

// paymentKey is stable while the draft is unchanged, so a retried confirm
// reuses the same card charge.
func paymentKey(shopID, sessionID string, d *models.BookingDraft) string {
	return fmt.Sprintf("booking:%s:%s:%d", shopID, sessionID, d.UpdatedAt.UnixNano())
}

// resolvePaymentMethod picks the first enabled method when none was chosen.
func resolvePaymentMethod(cfg *models.PaymentsConfig, method string) (string, error) {
	if method == "" {
		if len(cfg.EnabledMethods) == 0 {
			return "", ErrPaymentMethodDisabled
		}
		return cfg.EnabledMethods[0], nil
	}
	if !cfg.Enabled(method) {
		return "", fmt.Errorf("%w: %s", ErrPaymentMethodDisabled, method)
	}
	return method, nil
}

func buildAppointment(shopID string, d *models.BookingDraft, method string, now time.Time) models.Appointment {
	professional := models.AnyProfessional
	if d.Professional != nil && d.Professional.Name != "" {
		professional = d.Professional.Name
	}
	return models.Appointment{
		ID:               strconv.FormatInt(now.UnixMilli(), 10),
		ShopID:           shopID,
		ClientName:       d.Client.Name,
		ClientPhone:      d.Client.Phone,
		ClientEmail:      d.Client.Email,
		ServiceName:      d.Service.Name,
		ProfessionalName: professional,
		DateTime:         d.Date + "T" + d.Time,
		Duration:         d.Service.Duration,
		Status:           models.AppointmentStatusConfirmed,
		PaymentMethod:    method,
		Price:            d.Service.Price,
		CreatedAt:        now.UTC(),
	}
}
