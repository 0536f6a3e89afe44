package appointmentRepo

import (
	"context"
	"errors"

	"barbershop/models"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepository is the append-only appointment list of each shop.
type AppointmentRepository interface {
	Append(ctx context.Context, appt models.Appointment) error
	// ListByShop returns appointments in insertion order.
	ListByShop(ctx context.Context, shopID string) ([]models.Appointment, error)
	GetByID(ctx context.Context, shopID, id string) (*models.Appointment, error)
}
