package reports

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	appointmentRepo "barbershop/database/repository/appointment"
	"barbershop/models"
)

var ErrInvalidRange = errors.New("invalid report range")

type ReportService interface {
	// Build aggregates appointments whose date falls in [from, to]. Empty
	// bounds are open.
	Build(ctx context.Context, shopID, from, to string) (*models.Report, error)
}

type DefaultReportService struct {
	Appointments appointmentRepo.AppointmentRepository
}

func NewReportService(repo appointmentRepo.AppointmentRepository) *DefaultReportService {
	return &DefaultReportService{Appointments: repo}
}

func (s *DefaultReportService) Build(ctx context.Context, shopID, from, to string) (*models.Report, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	appts, err := s.Appointments.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	report := &models.Report{ShopID: shopID, From: from, To: to}
	byService := map[string]*models.ReportBucket{}
	byProfessional := map[string]*models.ReportBucket{}
	byMethod := map[string]*models.ReportBucket{}
	byDay := map[string]*models.ReportBucket{}

	for _, a := range appts {
		day := appointmentDay(a)
		if (from != "" && day < from) || (to != "" && day > to) {
			continue
		}
		report.Appointments++
		report.Revenue += a.Price
		add(byService, a.ServiceName, a.Price)
		add(byProfessional, a.ProfessionalName, a.Price)
		add(byMethod, a.PaymentMethod, a.Price)
		add(byDay, day, a.Price)
	}
	if report.Appointments > 0 {
		report.AverageTicket = round2(report.Revenue / float64(report.Appointments))
	}
	report.Revenue = round2(report.Revenue)
	report.ByService = ranked(byService)
	report.ByProfessional = ranked(byProfessional)
	report.ByPaymentMethod = ranked(byMethod)
	report.ByDay = chronological(byDay)
	return report, nil
}

func validateRange(from, to string) error {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidRange, d)
		}
	}
	if from != "" && to != "" && from > to {
		return fmt.Errorf("%w: from is after to", ErrInvalidRange)
	}
	return nil
}

func appointmentDay(a models.Appointment) string {
	if len(a.DateTime) >= 10 {
		return a.DateTime[:10]
	}
	return a.DateTime
}

func add(m map[string]*models.ReportBucket, key string, price float64) {
	if key == "" {
		key = "-"
	}
	b, ok := m[key]
	if !ok {
		b = &models.ReportBucket{Key: key}
		m[key] = b
	}
	b.Count++
	b.Revenue += price
}

func flatten(m map[string]*models.ReportBucket) []models.ReportBucket {
	out := make([]models.ReportBucket, 0, len(m))
	for _, b := range m {
		b.Revenue = round2(b.Revenue)
		out = append(out, *b)
	}
	return out
}

// ranked orders buckets by revenue, highest first.
func ranked(m map[string]*models.ReportBucket) []models.ReportBucket {
	out := flatten(m)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func chronological(m map[string]*models.ReportBucket) []models.ReportBucket {
	out := flatten(m)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
