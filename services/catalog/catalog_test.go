package catalog

import (
	"context"
	"testing"

	"barbershop/database/kv"
	catalogRepo "barbershop/database/repository/catalog"
	"barbershop/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *DefaultCatalogService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCatalogService(catalogRepo.NewKVCatalogRepo(kv.NewRedisStore(client)), nil)
}

func TestServices_SeedsDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	services, err := svc.Services(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, DefaultServices(), services)

	_, err = svc.ReplaceServices(ctx, "s1", []models.Service{{ID: "x", Name: "Navalhado", Duration: 30, Price: 45, Active: true}})
	require.NoError(t, err)

	services, err = svc.Services(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Navalhado", services[0].Name)
}

func TestReplaceServices_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.ReplaceServices(ctx, "s1", []models.Service{{Name: " ", Duration: 10}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = svc.ReplaceServices(ctx, "s1", []models.Service{{Name: "Corte", Duration: 0}})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "duration", verr.Field)

	_, err = svc.ReplaceServices(ctx, "s1", []models.Service{
		{ID: "a", Name: "Corte", Duration: 10},
		{ID: "a", Name: "Barba", Duration: 10},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)

	saved, err := svc.ReplaceServices(ctx, "s1", []models.Service{{Name: "Corte", Duration: 10}})
	require.NoError(t, err)
	assert.NotEmpty(t, saved[0].ID)
}

func TestFindService_SkipsInactive(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.ReplaceServices(ctx, "s1", []models.Service{{ID: "off", Name: "Antigo", Duration: 10, Active: false}})
	require.NoError(t, err)

	_, err = svc.FindService(ctx, "s1", "off")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestProfessionalsCRUD(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateProfessional(ctx, "s1", models.Professional{Name: "  Pedro  ", Email: "pedro@example.com", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "Pedro", created.Name)
	assert.NotEmpty(t, created.ID)

	all, err := svc.Professionals(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultProfessionals())+1)

	updated, err := svc.UpdateProfessional(ctx, "s1", created.ID, models.Professional{Name: "Pedro Lima", Active: false})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	found, err := svc.FindProfessional(ctx, "s1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pedro Lima", found.Name)

	require.NoError(t, svc.DeleteProfessional(ctx, "s1", created.ID))
	_, err = svc.FindProfessional(ctx, "s1", created.ID)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	assert.ErrorIs(t, svc.DeleteProfessional(ctx, "s1", "ghost"), ErrProfessionalNotFound)

	_, err = svc.CreateProfessional(ctx, "s1", models.Professional{Name: "X", Email: "not-an-email"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
