package appointmentRepo

import (
	"context"
	"fmt"

	"barbershop/database/kv"
	"barbershop/models"
)

type kvAppointmentRepo struct {
	store kv.Store
}

// NewKVAppointmentRepo keeps each shop's appointments as a list under one key.
func NewKVAppointmentRepo(store kv.Store) AppointmentRepository {
	return &kvAppointmentRepo{store: store}
}

func (r *kvAppointmentRepo) Append(ctx context.Context, appt models.Appointment) error {
	if _, err := kv.AppendJSON(ctx, r.store, kv.AppointmentsKey(appt.ShopID), appt, 0); err != nil {
		return fmt.Errorf("append appointment %s: %w", appt.ID, err)
	}
	return nil
}

func (r *kvAppointmentRepo) ListByShop(ctx context.Context, shopID string) ([]models.Appointment, error) {
	appts, err := kv.RangeJSON[models.Appointment](ctx, r.store, kv.AppointmentsKey(shopID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (r *kvAppointmentRepo) GetByID(ctx context.Context, shopID, id string) (*models.Appointment, error) {
	appts, err := r.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].ID == id {
			return &appts[i], nil
		}
	}
	return nil, ErrAppointmentNotFound
}
