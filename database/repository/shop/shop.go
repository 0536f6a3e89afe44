package shopRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"barbershop/database/kv"
	"barbershop/models"
)

var (
	ErrSettingsMissing      = errors.New("shop settings not initialized")
	ErrNotificationNotFound = errors.New("notification not found")
)

// maxNotifications caps the per-shop feed.
const maxNotifications = 200

type ShopRepository interface {
	Register(ctx context.Context, shopID string) error
	ShopIDs(ctx context.Context) ([]string, error)

	PaymentsConfig(ctx context.Context, shopID string) (*models.PaymentsConfig, error)
	SavePaymentsConfig(ctx context.Context, shopID string, cfg models.PaymentsConfig) error

	NotificationSettings(ctx context.Context, shopID string) (*models.NotificationSettings, error)
	SaveNotificationSettings(ctx context.Context, shopID string, settings models.NotificationSettings) error

	AppendNotification(ctx context.Context, shopID string, n models.Notification) error
	Notifications(ctx context.Context, shopID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, shopID, id string) error
	MarkAllNotificationsRead(ctx context.Context, shopID string) (int, error)

	// MarkReminded records that appointmentID was reminded and reports
	// whether this call was the first to do so.
	MarkReminded(ctx context.Context, shopID, appointmentID string, ttl time.Duration) (bool, error)
}

type kvShopRepo struct {
	store kv.Store
}

func NewKVShopRepo(store kv.Store) ShopRepository {
	return &kvShopRepo{store: store}
}

func (r *kvShopRepo) Register(ctx context.Context, shopID string) error {
	return r.store.AddMember(ctx, kv.ShopsKey, shopID)
}

func (r *kvShopRepo) ShopIDs(ctx context.Context) ([]string, error) {
	return r.store.Members(ctx, kv.ShopsKey)
}

func (r *kvShopRepo) PaymentsConfig(ctx context.Context, shopID string) (*models.PaymentsConfig, error) {
	var cfg models.PaymentsConfig
	if err := r.load(ctx, kv.PaymentsKey(shopID), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *kvShopRepo) SavePaymentsConfig(ctx context.Context, shopID string, cfg models.PaymentsConfig) error {
	return kv.SetJSON(ctx, r.store, kv.PaymentsKey(shopID), cfg, 0)
}

func (r *kvShopRepo) NotificationSettings(ctx context.Context, shopID string) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	if err := r.load(ctx, kv.NotificationSettingsKey(shopID), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *kvShopRepo) SaveNotificationSettings(ctx context.Context, shopID string, settings models.NotificationSettings) error {
	return kv.SetJSON(ctx, r.store, kv.NotificationSettingsKey(shopID), settings, 0)
}

func (r *kvShopRepo) AppendNotification(ctx context.Context, shopID string, n models.Notification) error {
	_, err := kv.AppendJSON(ctx, r.store, kv.NotificationsKey(shopID), n, maxNotifications)
	return err
}

func (r *kvShopRepo) Notifications(ctx context.Context, shopID string) ([]models.Notification, error) {
	return kv.RangeJSON[models.Notification](ctx, r.store, kv.NotificationsKey(shopID), 0, -1)
}

func (r *kvShopRepo) MarkNotificationRead(ctx context.Context, shopID, id string) error {
	list, err := r.Notifications(ctx, shopID)
	if err != nil {
		return err
	}
	for i, n := range list {
		if n.ID != id {
			continue
		}
		if n.Read {
			return nil
		}
		n.Read = true
		return r.setAt(ctx, shopID, int64(i), n)
	}
	return ErrNotificationNotFound
}

func (r *kvShopRepo) MarkAllNotificationsRead(ctx context.Context, shopID string) (int, error) {
	list, err := r.Notifications(ctx, shopID)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i, n := range list {
		if n.Read {
			continue
		}
		n.Read = true
		if err := r.setAt(ctx, shopID, int64(i), n); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}

func (r *kvShopRepo) MarkReminded(ctx context.Context, shopID, appointmentID string, ttl time.Duration) (bool, error) {
	return r.store.SetNX(ctx, kv.ReminderKey(shopID, appointmentID), []byte("1"), ttl)
}

func (r *kvShopRepo) setAt(ctx context.Context, shopID string, index int64, n models.Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return r.store.SetIndex(ctx, kv.NotificationsKey(shopID), index, raw)
}

func (r *kvShopRepo) load(ctx context.Context, key string, out any) error {
	err := kv.GetJSON(ctx, r.store, key, out)
	if errors.Is(err, kv.ErrNotFound) {
		return ErrSettingsMissing
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	return nil
}
