package booking

import (
	"context"
	"time"

	appointmentRepo "barbershop/database/repository/appointment"
	draftRepo "barbershop/database/repository/draft"
	"barbershop/metrics"
	"barbershop/models"
	"barbershop/services/catalog"
	"barbershop/services/payment"
	"barbershop/services/shop"

	"go.uber.org/zap"
)

// BookingSessionService drives the client booking wizard. Every step loads
// the session's draft (or an empty one), merges its own fields and saves it.
type BookingSessionService interface {
	StartSession(ctx context.Context, shopID string) (string, *models.BookingDraft, error)
	GetDraft(ctx context.Context, shopID, sessionID string) (*models.BookingDraft, error)

	SelectService(ctx context.Context, shopID, sessionID, serviceID string) (*models.BookingDraft, error)
	// SelectProfessional clears the choice when professionalID is empty or "any".
	SelectProfessional(ctx context.Context, shopID, sessionID, professionalID string) (*models.BookingDraft, error)
	SelectDateTime(ctx context.Context, shopID, sessionID, date, clock string) (*models.BookingDraft, error)
	SetClient(ctx context.Context, shopID, sessionID string, client models.ClientInfo) (*models.BookingDraft, error)
	Merge(ctx context.Context, shopID, sessionID string, patch models.DraftPatch) (*models.BookingDraft, error)

	Finalize(ctx context.Context, shopID, sessionID, paymentMethod string) (*models.Appointment, error)
	CancelSession(ctx context.Context, shopID, sessionID string) error

	Appointments(ctx context.Context, shopID string) ([]models.Appointment, error)
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	DraftRepo       draftRepo.DraftRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	Catalog         catalog.CatalogService
	Shop            shop.ShopService
	Payments        payment.PaymentHandler
	Metrics         *metrics.BookingMetrics
	Logger          *zap.Logger
	Now             func() time.Time
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingSessionService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
