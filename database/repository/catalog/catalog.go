package catalogRepo

import (
	"context"
	"errors"
	"fmt"

	"barbershop/database/kv"
	"barbershop/models"
)

// ErrCatalogMissing means the shop never stored the list, as opposed to
// storing an empty one.
var ErrCatalogMissing = errors.New("catalog not initialized")

type CatalogRepository interface {
	Services(ctx context.Context, shopID string) ([]models.Service, error)
	SaveServices(ctx context.Context, shopID string, services []models.Service) error
	Professionals(ctx context.Context, shopID string) ([]models.Professional, error)
	SaveProfessionals(ctx context.Context, shopID string, professionals []models.Professional) error
}

type kvCatalogRepo struct {
	store kv.Store
}

func NewKVCatalogRepo(store kv.Store) CatalogRepository {
	return &kvCatalogRepo{store: store}
}

func (r *kvCatalogRepo) Services(ctx context.Context, shopID string) ([]models.Service, error) {
	var services []models.Service
	if err := r.load(ctx, kv.ServicesKey(shopID), &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *kvCatalogRepo) SaveServices(ctx context.Context, shopID string, services []models.Service) error {
	if services == nil {
		services = []models.Service{}
	}
	return kv.SetJSON(ctx, r.store, kv.ServicesKey(shopID), services, 0)
}

func (r *kvCatalogRepo) Professionals(ctx context.Context, shopID string) ([]models.Professional, error) {
	var professionals []models.Professional
	if err := r.load(ctx, kv.ProfessionalsKey(shopID), &professionals); err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *kvCatalogRepo) SaveProfessionals(ctx context.Context, shopID string, professionals []models.Professional) error {
	if professionals == nil {
		professionals = []models.Professional{}
	}
	return kv.SetJSON(ctx, r.store, kv.ProfessionalsKey(shopID), professionals, 0)
}

func (r *kvCatalogRepo) load(ctx context.Context, key string, out any) error {
	err := kv.GetJSON(ctx, r.store, key, out)
	if errors.Is(err, kv.ErrNotFound) {
		return ErrCatalogMissing
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	return nil
}
