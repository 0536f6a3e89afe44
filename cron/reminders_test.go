package cron

import (
	"context"
	"testing"
	"time"

	"barbershop/database/kv"
	appointmentRepo "barbershop/database/repository/appointment"
	shopRepo "barbershop/database/repository/shop"
	"barbershop/models"
	"barbershop/services/shop"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 10, 24, 8, 30, 0, 0, time.UTC)

func newWorker(t *testing.T) (*ReminderWorker, *shop.DefaultShopService, appointmentRepo.AppointmentRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := kv.NewRedisStore(client)

	repo := shopRepo.NewKVShopRepo(store)
	shops := shop.NewShopService(repo, "BRL", nil)
	shops.Now = func() time.Time { return now }
	appts := appointmentRepo.NewKVAppointmentRepo(store)

	w := &ReminderWorker{
		Shops:        shops,
		Marker:       repo,
		Appointments: appts,
		Location:     time.UTC,
		Now:          func() time.Time { return now },
	}
	return w, shops, appts
}

func seedAppointments(t *testing.T, shops shop.ShopService, appts appointmentRepo.AppointmentRepository) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, shops.Register(ctx, "s1"))
	for _, a := range []models.Appointment{
		{ID: "soon", ShopID: "s1", ClientName: "Ana", ServiceName: "Corte Masculino", ProfessionalName: models.AnyProfessional, DateTime: "2024-10-24T09:00"},
		{ID: "later", ShopID: "s1", ClientName: "Bruno", ServiceName: "Barba", DateTime: "2024-10-24T15:00"},
		{ID: "past", ShopID: "s1", ClientName: "Caio", ServiceName: "Barba", DateTime: "2024-10-24T08:00"},
		{ID: "broken", ShopID: "s1", ClientName: "Davi", DateTime: "amanhã"},
	} {
		require.NoError(t, appts.Append(ctx, a))
	}
}

func TestRunOnce_RemindsOnlyUpcomingOnce(t *testing.T) {
	ctx := context.Background()
	w, shops, appts := newWorker(t)
	seedAppointments(t, shops, appts)

	sent, err := w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	feed, err := shops.Notifications(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotificationReminder, feed[0].Category)
	assert.Contains(t, feed[0].Content, "Ana às 09:00")

	sent, err = w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestRunOnce_RespectsSettings(t *testing.T) {
	ctx := context.Background()
	w, shops, appts := newWorker(t)
	seedAppointments(t, shops, appts)

	_, err := shops.UpdateNotificationSettings(ctx, "s1", models.NotificationSettings{Reminders: false})
	require.NoError(t, err)
	sent, err := w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)

	_, err = shops.UpdateNotificationSettings(ctx, "s1", models.NotificationSettings{Reminders: true, ReminderLeadMinutes: 8 * 60})
	require.NoError(t, err)
	sent, err = w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestStartReminderWorker_InvalidSchedule(t *testing.T) {
	w, _, _ := newWorker(t)
	_, err := StartReminderWorker("not a schedule", w)
	assert.Error(t, err)
}
