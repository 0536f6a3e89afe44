package cron

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "barbershop/database/repository/appointment"
	"barbershop/metrics"
	"barbershop/models"
	"barbershop/services/shop"
	"barbershop/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderMarker records that an appointment was reminded; it reports true
// only for the first caller.
type ReminderMarker interface {
	MarkReminded(ctx context.Context, shopID, appointmentID string, ttl time.Duration) (bool, error)
}

// ReminderWorker turns upcoming appointments into "reminder" notifications.
type ReminderWorker struct {
	Shops        shop.ShopService
	Marker       ReminderMarker
	Appointments appointmentRepo.AppointmentRepository
	Metrics      *metrics.BookingMetrics
	Logger       *zap.Logger
	// Location is the zone appointment times are written in.
	Location *time.Location
	Now      func() time.Time
}

// RunOnce scans every known shop and returns how many reminders it sent.
func (w *ReminderWorker) RunOnce(ctx context.Context) (int, error) {
	log := w.logger()
	now := w.now()

	shopIDs, err := w.Shops.ShopIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list shops: %w", err)
	}

	sent := 0
	for _, shopID := range shopIDs {
		n, err := w.remindShop(ctx, shopID, now)
		if err != nil {
			log.Warn("reminder scan failed", zap.String("shopID", shopID), zap.Error(err))
			continue
		}
		sent += n
	}
	if sent > 0 {
		log.Info("reminders sent", zap.Int("count", sent))
	}
	return sent, nil
}

func (w *ReminderWorker) remindShop(ctx context.Context, shopID string, now time.Time) (int, error) {
	settings, err := w.Shops.NotificationSettings(ctx, shopID)
	if err != nil {
		return 0, err
	}
	if !settings.Reminders || settings.ReminderLeadMinutes <= 0 {
		return 0, nil
	}
	horizon := now.Add(time.Duration(settings.ReminderLeadMinutes) * time.Minute)

	appts, err := w.Appointments.ListByShop(ctx, shopID)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, a := range appts {
		start, err := a.StartsAt(w.location())
		if err != nil || start.Before(now) || start.After(horizon) {
			continue
		}
		first, err := w.Marker.MarkReminded(ctx, shopID, a.ID, utils.ReminderMarkerTTL)
		if err != nil {
			return sent, err
		}
		if !first {
			continue
		}
		ok, err := w.Shops.Notify(ctx, shopID, models.NotificationReminder,
			"Lembrete de horário",
			fmt.Sprintf("%s às %s: %s com %s", a.ClientName, start.Format("15:04"), a.ServiceName, a.ProfessionalName),
		)
		if err != nil {
			return sent, err
		}
		if ok {
			sent++
			w.Metrics.ReminderSent()
		}
	}
	return sent, nil
}

// StartReminderWorker schedules RunOnce on schedule (robfig cron syntax, e.g.
// "@every 1m"). Stop the returned scheduler on shutdown.
func StartReminderWorker(schedule string, w *ReminderWorker) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := w.RunOnce(ctx); err != nil {
			w.logger().Error("reminder run failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", schedule, err)
	}
	c.Start()
	w.logger().Info("reminder worker started", zap.String("schedule", schedule))
	return c, nil
}

func (w *ReminderWorker) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *ReminderWorker) location() *time.Location {
	if w.Location != nil {
		return w.Location
	}
	return time.Local
}

func (w *ReminderWorker) logger() *zap.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return zap.NewNop()
}
