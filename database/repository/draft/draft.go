package draftRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barbershop/database/kv"
	"barbershop/models"
)

var ErrDraftNotFound = errors.New("booking draft not found")

// DraftRepository persists one booking draft per (shop, session).
type DraftRepository interface {
	Load(ctx context.Context, shopID, sessionID string) (*models.BookingDraft, error)
	Save(ctx context.Context, shopID, sessionID string, draft models.BookingDraft) error
	Delete(ctx context.Context, shopID, sessionID string) error
}

type kvDraftRepo struct {
	store kv.Store
	ttl   time.Duration
}

// NewKVDraftRepo stores drafts in the key-value namespace. A zero ttl keeps
// drafts until they are finalized or cancelled.
func NewKVDraftRepo(store kv.Store, ttl time.Duration) DraftRepository {
	return &kvDraftRepo{store: store, ttl: ttl}
}

// Load returns ErrDraftNotFound when the session has no draft yet.
func (r *kvDraftRepo) Load(ctx context.Context, shopID, sessionID string) (*models.BookingDraft, error) {
	var draft models.BookingDraft
	err := kv.GetJSON(ctx, r.store, kv.DraftKey(shopID, sessionID), &draft)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft %s: %w", sessionID, err)
	}
	return &draft, nil
}

func (r *kvDraftRepo) Save(ctx context.Context, shopID, sessionID string, draft models.BookingDraft) error {
	if err := kv.SetJSON(ctx, r.store, kv.DraftKey(shopID, sessionID), draft, r.ttl); err != nil {
		return fmt.Errorf("save draft %s: %w", sessionID, err)
	}
	return nil
}

func (r *kvDraftRepo) Delete(ctx context.Context, shopID, sessionID string) error {
	if err := r.store.Delete(ctx, kv.DraftKey(shopID, sessionID)); err != nil {
		return fmt.Errorf("delete draft %s: %w", sessionID, err)
	}
	return nil
}
