package ownerRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"barbershop/database/kv"
	"barbershop/models"
)

var ErrOwnerNotFound = errors.New("owner not found")

type OwnerRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Owner, error)
	Save(ctx context.Context, owner models.Owner) error
}

type kvOwnerRepo struct {
	store kv.Store
}

func NewKVOwnerRepo(store kv.Store) OwnerRepository {
	return &kvOwnerRepo{store: store}
}

func (r *kvOwnerRepo) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	var owner models.Owner
	err := kv.GetJSON(ctx, r.store, kv.OwnerKey(normalizeEmail(email)), &owner)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load owner: %w", err)
	}
	return &owner, nil
}

func (r *kvOwnerRepo) Save(ctx context.Context, owner models.Owner) error {
	owner.Email = normalizeEmail(owner.Email)
	return kv.SetJSON(ctx, r.store, kv.OwnerKey(owner.Email), owner, 0)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
