package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"barbershop/database/kv"
	appointmentRepo "barbershop/database/repository/appointment"
	catalogRepo "barbershop/database/repository/catalog"
	draftRepo "barbershop/database/repository/draft"
	shopRepo "barbershop/database/repository/shop"
	"barbershop/models"
	"barbershop/services/catalog"
	"barbershop/services/payment"
	"barbershop/services/shop"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShop = "barbearia-centro"

var fixedNow = time.Date(2024, 10, 20, 14, 30, 0, 0, time.UTC)

type fixture struct {
	svc    *DefaultBookingSessionService
	drafts draftRepo.DraftRepository
	appts  appointmentRepo.AppointmentRepository
	shop   *shop.DefaultShopService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := kv.NewRedisStore(client)

	drafts := draftRepo.NewKVDraftRepo(store, time.Hour)
	appts := appointmentRepo.NewKVAppointmentRepo(store)
	shopSvc := shop.NewShopService(shopRepo.NewKVShopRepo(store), "BRL", nil)
	shopSvc.Now = func() time.Time { return fixedNow }

	svc := &DefaultBookingSessionService{
		DraftRepo:       drafts,
		AppointmentRepo: appts,
		Catalog:         catalog.NewCatalogService(catalogRepo.NewKVCatalogRepo(store), nil),
		Shop:            shopSvc,
		Payments:        payment.NewPaymentHandler(nil, nil),
		Now:             func() time.Time { return fixedNow },
	}
	return &fixture{svc: svc, drafts: drafts, appts: appts, shop: shopSvc}
}

func strPtr(s string) *string { return &s }

func TestWizardSteps_AccumulateDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sessionID, draft, err := f.svc.StartSession(ctx, testShop)
	require.NoError(t, err)
	assert.True(t, draft.IsEmpty())

	_, err = f.svc.SelectService(ctx, testShop, sessionID, "corte-masculino")
	require.NoError(t, err)
	_, err = f.svc.SelectProfessional(ctx, testShop, sessionID, "carlos")
	require.NoError(t, err)
	_, err = f.svc.SelectDateTime(ctx, testShop, sessionID, "2024-10-24", "09:00")
	require.NoError(t, err)
	_, err = f.svc.SetClient(ctx, testShop, sessionID, models.ClientInfo{Name: " Ana ", Phone: "11999990000", Email: "ana@example.com"})
	require.NoError(t, err)

	got, err := f.svc.GetDraft(ctx, testShop, sessionID)
	require.NoError(t, err)
	require.NotNil(t, got.Service)
	assert.Equal(t, "Corte Masculino", got.Service.Name)
	assert.Equal(t, 50.0, got.Service.Price)
	assert.Equal(t, 30, got.Service.Duration)
	require.NotNil(t, got.Professional)
	assert.Equal(t, "Carlos Silva", got.Professional.Name)
	assert.Equal(t, "2024-10-24", got.Date)
	assert.Equal(t, "09:00", got.Time)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Ana", got.Client.Name)
}

func TestBackNavigation_KeepsLaterFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	sessionID := "tab-1"

	_, err := f.svc.SelectService(ctx, testShop, sessionID, "barba")
	require.NoError(t, err)
	_, err = f.svc.SelectDateTime(ctx, testShop, sessionID, "2024-10-24", "10:30")
	require.NoError(t, err)

	// Going back to step one only replaces the service.
	draft, err := f.svc.SelectService(ctx, testShop, sessionID, "sobrancelha")
	require.NoError(t, err)
	assert.Equal(t, "Sobrancelha", draft.Service.Name)
	assert.Equal(t, "2024-10-24", draft.Date)
	assert.Equal(t, "10:30", draft.Time)
}

func TestSelectProfessional_AnyClearsChoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SelectProfessional(ctx, testShop, "s", "rafael")
	require.NoError(t, err)
	draft, err := f.svc.SelectProfessional(ctx, testShop, "s", "any")
	require.NoError(t, err)
	assert.Nil(t, draft.Professional)

	_, err = f.svc.SelectProfessional(ctx, testShop, "s", "ghost")
	assert.ErrorIs(t, err, catalog.ErrProfessionalNotFound)
}

func TestStepInputValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	var inputErr *InputError

	_, err := f.svc.SelectDateTime(ctx, testShop, "s", "24/10/2024", "09:00")
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "date", inputErr.Field)

	_, err = f.svc.SelectDateTime(ctx, testShop, "s", "2024-10-24", "9h")
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "time", inputErr.Field)

	_, err = f.svc.SetClient(ctx, testShop, "s", models.ClientInfo{Name: "  "})
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "name", inputErr.Field)

	_, err = f.svc.SelectService(ctx, testShop, "s", "unknown")
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)

	_, err = f.svc.GetDraft(ctx, testShop, "bad id with spaces")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestGetDraft_UnknownSessionIsEmpty(t *testing.T) {
	draft, err := newFixture(t).svc.GetDraft(context.Background(), testShop, "fresh")
	require.NoError(t, err)
	assert.True(t, draft.IsEmpty())
	assert.Equal(t, testShop, draft.ShopID)
}

func TestFinalize_MissingFieldsLeavesDraftUntouched(t *testing.T) {
	full := models.DraftPatch{
		Service: &models.ServiceRef{Name: "Corte Masculino", Price: 50},
		Client:  &models.ClientInfo{Name: "Ana"},
		Date:    strPtr("2024-10-24"),
		Time:    strPtr("09:00"),
	}
	cases := []struct {
		name    string
		drop    func(p *models.DraftPatch)
		missing []string
	}{
		{"service", func(p *models.DraftPatch) { p.Service = nil }, []string{"service"}},
		{"client", func(p *models.DraftPatch) { p.Client = nil }, []string{"client"}},
		{"date", func(p *models.DraftPatch) { p.Date = nil }, []string{"date"}},
		{"time", func(p *models.DraftPatch) { p.Time = nil }, []string{"time"}},
		{"all", func(p *models.DraftPatch) { *p = models.DraftPatch{} }, []string{"service", "client", "date", "time"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)

			patch := full
			tc.drop(&patch)
			if patch != (models.DraftPatch{}) {
				_, err := f.svc.Merge(ctx, testShop, "sess", patch)
				require.NoError(t, err)
			}
			before, err := f.svc.GetDraft(ctx, testShop, "sess")
			require.NoError(t, err)

			_, err = f.svc.Finalize(ctx, testShop, "sess", models.PaymentMethodCash)
			var missingErr *MissingFieldsError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tc.missing, missingErr.Fields)

			appts, err := f.appts.ListByShop(ctx, testShop)
			require.NoError(t, err)
			assert.Empty(t, appts)

			after, err := f.svc.GetDraft(ctx, testShop, "sess")
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestFinalize_CreatesOneAppointmentAndClearsDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Merge(ctx, testShop, "sess", models.DraftPatch{
		Service: &models.ServiceRef{Name: "Corte Masculino", Price: 50},
		Client:  &models.ClientInfo{Name: "Ana"},
		Date:    strPtr("2024-10-24"),
		Time:    strPtr("09:00"),
	})
	require.NoError(t, err)

	appt, err := f.svc.Finalize(ctx, testShop, "sess", models.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, models.AnyProfessional, appt.ProfessionalName)
	assert.Equal(t, "Qualquer profissional", appt.ProfessionalName)
	assert.Equal(t, 50.0, appt.Price)
	assert.Equal(t, "2024-10-24T09:00", appt.DateTime)
	assert.Equal(t, models.AppointmentStatusConfirmed, appt.Status)
	assert.Equal(t, "Ana", appt.ClientName)
	assert.Equal(t, "Corte Masculino", appt.ServiceName)
	assert.Equal(t, models.PaymentMethodCash, appt.PaymentMethod)
	assert.Equal(t, "1729434600000", appt.ID)

	appts, err := f.appts.ListByShop(ctx, testShop)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, appt.ID, appts[0].ID)

	_, err = f.drafts.Load(ctx, testShop, "sess")
	assert.ErrorIs(t, err, draftRepo.ErrDraftNotFound)

	// A resubmission sees the cleared draft.
	_, err = f.svc.Finalize(ctx, testShop, "sess", models.PaymentMethodCash)
	var missingErr *MissingFieldsError
	assert.ErrorAs(t, err, &missingErr)

	appts, err = f.appts.ListByShop(ctx, testShop)
	require.NoError(t, err)
	assert.Len(t, appts, 1)
}

func TestFinalize_UsesChosenProfessionalAndDuration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SelectService(ctx, testShop, "sess", "corte-barba")
	require.NoError(t, err)
	_, err = f.svc.SelectProfessional(ctx, testShop, "sess", "rafael")
	require.NoError(t, err)
	_, err = f.svc.SelectDateTime(ctx, testShop, "sess", "2024-11-02", "16:15")
	require.NoError(t, err)
	_, err = f.svc.SetClient(ctx, testShop, "sess", models.ClientInfo{Name: "Bruno"})
	require.NoError(t, err)

	appt, err := f.svc.Finalize(ctx, testShop, "sess", models.PaymentMethodCard)
	require.NoError(t, err)
	assert.Equal(t, "Rafael Souza", appt.ProfessionalName)
	assert.Equal(t, 50, appt.Duration)
	assert.Equal(t, 80.0, appt.Price)
	assert.Contains(t, appt.PaymentReference, "pi_sim_")
}

func TestFinalize_PaymentMethodMustBeEnabled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.shop.UpdatePaymentsConfig(ctx, testShop, models.PaymentsConfig{EnabledMethods: []string{models.PaymentMethodCash}})
	require.NoError(t, err)
	_, err = f.svc.Merge(ctx, testShop, "sess", models.DraftPatch{
		Service: &models.ServiceRef{Name: "Barba", Price: 35},
		Client:  &models.ClientInfo{Name: "Caio"},
		Date:    strPtr("2024-10-25"),
		Time:    strPtr("11:00"),
	})
	require.NoError(t, err)

	_, err = f.svc.Finalize(ctx, testShop, "sess", models.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrPaymentMethodDisabled)

	draft, err := f.drafts.Load(ctx, testShop, "sess")
	require.NoError(t, err)
	assert.Equal(t, "Caio", draft.Client.Name)

	// No method falls back to the first enabled one.
	appt, err := f.svc.Finalize(ctx, testShop, "sess", "")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCash, appt.PaymentMethod)
}

func TestFinalize_AppendsBookingNotification(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Merge(ctx, testShop, "sess", models.DraftPatch{
		Service: &models.ServiceRef{Name: "Barba", Price: 35},
		Client:  &models.ClientInfo{Name: "Caio"},
		Date:    strPtr("2024-10-25"),
		Time:    strPtr("11:00"),
	})
	require.NoError(t, err)
	_, err = f.svc.Finalize(ctx, testShop, "sess", "")
	require.NoError(t, err)

	feed, err := f.shop.Notifications(ctx, testShop)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotificationNewBooking, feed[0].Category)
	assert.Contains(t, feed[0].Content, "Caio")
}

func TestCancelSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sessionID, _, err := f.svc.StartSession(ctx, testShop)
	require.NoError(t, err)
	_, err = f.svc.SelectService(ctx, testShop, sessionID, "barba")
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelSession(ctx, testShop, sessionID))
	draft, err := f.svc.GetDraft(ctx, testShop, sessionID)
	require.NoError(t, err)
	assert.True(t, draft.IsEmpty())
}

func TestFinalize_RegistersShopWithoutStartSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SelectService(ctx, "nova", "cliente-1", "corte-masculino")
	require.NoError(t, err)
	_, err = f.svc.SelectDateTime(ctx, "nova", "cliente-1", "2024-10-21", "09:00")
	require.NoError(t, err)
	_, err = f.svc.SetClient(ctx, "nova", "cliente-1", models.ClientInfo{Name: "Duda"})
	require.NoError(t, err)

	ids, err := f.shop.ShopIDs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "nova")

	_, err = f.svc.Finalize(ctx, "nova", "cliente-1", models.PaymentMethodCash)
	require.NoError(t, err)

	ids, err = f.shop.ShopIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "nova")
}

type flakyCard struct {
	keys  []string
	fails int
}

func (c *flakyCard) CreateIntent(_ context.Context, _ int64, _, key string, _ map[string]string) (*payment.CardIntent, error) {
	c.keys = append(c.keys, key)
	if c.fails > 0 {
		c.fails--
		return nil, errors.New("network timeout")
	}
	return &payment.CardIntent{ID: "pi_retry", Status: "requires_payment_method"}, nil
}

func TestFinalize_RetryReusesCardIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	card := &flakyCard{fails: 1}
	f.svc.Payments = payment.NewPaymentHandler(nil, card)

	_, err := f.svc.Merge(ctx, testShop, "sess", models.DraftPatch{
		Service: &models.ServiceRef{Name: "Barba", Price: 35},
		Client:  &models.ClientInfo{Name: "Caio"},
		Date:    strPtr("2024-10-25"),
		Time:    strPtr("11:00"),
	})
	require.NoError(t, err)

	_, err = f.svc.Finalize(ctx, testShop, "sess", models.PaymentMethodCard)
	assert.ErrorIs(t, err, payment.ErrPaymentFailed)

	appt, err := f.svc.Finalize(ctx, testShop, "sess", models.PaymentMethodCard)
	require.NoError(t, err)
	assert.Equal(t, "pi_retry", appt.PaymentReference)

	require.Len(t, card.keys, 2)
	assert.Equal(t, card.keys[0], card.keys[1])
	assert.Contains(t, card.keys[0], "sess")
}
