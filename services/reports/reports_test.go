package reports

import (
	"context"
	"testing"

	"barbershop/database/kv"
	appointmentRepo "barbershop/database/repository/appointment"
	"barbershop/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *DefaultReportService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := appointmentRepo.NewKVAppointmentRepo(kv.NewRedisStore(client))

	appts := []models.Appointment{
		{ID: "1", ShopID: "s1", ServiceName: "Corte Masculino", ProfessionalName: "Carlos Silva", DateTime: "2024-10-24T09:00", Price: 50, PaymentMethod: "pix"},
		{ID: "2", ShopID: "s1", ServiceName: "Barba", ProfessionalName: models.AnyProfessional, DateTime: "2024-10-24T10:00", Price: 35, PaymentMethod: "cash"},
		{ID: "3", ShopID: "s1", ServiceName: "Corte Masculino", ProfessionalName: "Carlos Silva", DateTime: "2024-10-25T11:00", Price: 50, PaymentMethod: "card"},
		{ID: "4", ShopID: "s1", ServiceName: "Corte + Barba", ProfessionalName: "Rafael Souza", DateTime: "2024-11-02T16:00", Price: 80, PaymentMethod: "pix"},
		{ID: "5", ShopID: "s2", ServiceName: "Barba", DateTime: "2024-10-24T09:00", Price: 35, PaymentMethod: "cash"},
	}
	for _, a := range appts {
		require.NoError(t, repo.Append(context.Background(), a))
	}
	return NewReportService(repo)
}

func TestBuild_WholeHistory(t *testing.T) {
	report, err := seed(t).Build(context.Background(), "s1", "", "")
	require.NoError(t, err)

	assert.Equal(t, 4, report.Appointments)
	assert.Equal(t, 215.0, report.Revenue)
	assert.Equal(t, 53.75, report.AverageTicket)

	require.NotEmpty(t, report.ByService)
	assert.Equal(t, models.ReportBucket{Key: "Corte Masculino", Count: 2, Revenue: 100}, report.ByService[0])

	require.Len(t, report.ByDay, 3)
	assert.Equal(t, "2024-10-24", report.ByDay[0].Key)
	assert.Equal(t, "2024-11-02", report.ByDay[2].Key)

	var pix models.ReportBucket
	for _, b := range report.ByPaymentMethod {
		if b.Key == "pix" {
			pix = b
		}
	}
	assert.Equal(t, 2, pix.Count)
	assert.Equal(t, 130.0, pix.Revenue)
}

func TestBuild_DateRange(t *testing.T) {
	report, err := seed(t).Build(context.Background(), "s1", "2024-10-24", "2024-10-24")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Appointments)
	assert.Equal(t, 85.0, report.Revenue)
	require.Len(t, report.ByDay, 1)
}

func TestBuild_EmptyShop(t *testing.T) {
	report, err := seed(t).Build(context.Background(), "nobody", "", "")
	require.NoError(t, err)
	assert.Zero(t, report.Appointments)
	assert.Zero(t, report.AverageTicket)
	assert.Empty(t, report.ByService)
}

func TestBuild_InvalidRange(t *testing.T) {
	svc := seed(t)
	_, err := svc.Build(context.Background(), "s1", "24/10/2024", "")
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.Build(context.Background(), "s1", "2024-11-01", "2024-10-01")
	assert.ErrorIs(t, err, ErrInvalidRange)
}
