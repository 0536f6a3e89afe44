package shop

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	shopRepo "barbershop/database/repository/shop"
	"barbershop/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("invalid shop configuration")

// ShopService backs the owner's payments and notifications screens.
type ShopService interface {
	Register(ctx context.Context, shopID string) error
	ShopIDs(ctx context.Context) ([]string, error)

	PaymentsConfig(ctx context.Context, shopID string) (*models.PaymentsConfig, error)
	UpdatePaymentsConfig(ctx context.Context, shopID string, cfg models.PaymentsConfig) (*models.PaymentsConfig, error)

	NotificationSettings(ctx context.Context, shopID string) (*models.NotificationSettings, error)
	UpdateNotificationSettings(ctx context.Context, shopID string, settings models.NotificationSettings) (*models.NotificationSettings, error)

	// Notify appends to the feed when the category is switched on and
	// reports whether it did.
	Notify(ctx context.Context, shopID, category, title, content string) (bool, error)
	Notifications(ctx context.Context, shopID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, shopID, id string) error
	MarkAllNotificationsRead(ctx context.Context, shopID string) (int, error)
}

type DefaultShopService struct {
	Repo            shopRepo.ShopRepository
	DefaultCurrency string
	Logger          *zap.Logger
	Now             func() time.Time
}

func NewShopService(repo shopRepo.ShopRepository, defaultCurrency string, logger *zap.Logger) *DefaultShopService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultCurrency == "" {
		defaultCurrency = "BRL"
	}
	return &DefaultShopService{Repo: repo, DefaultCurrency: defaultCurrency, Logger: logger, Now: time.Now}
}

func (s *DefaultShopService) Register(ctx context.Context, shopID string) error {
	return s.Repo.Register(ctx, shopID)
}

func (s *DefaultShopService) ShopIDs(ctx context.Context) ([]string, error) {
	return s.Repo.ShopIDs(ctx)
}

// DefaultPaymentsConfig enables every known method.
func (s *DefaultShopService) DefaultPaymentsConfig() models.PaymentsConfig {
	return models.PaymentsConfig{
		EnabledMethods: slices.Clone(models.KnownPaymentMethods),
		Currency:       s.DefaultCurrency,
	}
}

func DefaultNotificationSettings() models.NotificationSettings {
	return models.NotificationSettings{
		NewBooking:          true,
		Reminders:           true,
		ReminderLeadMinutes: 60,
		Email:               true,
	}
}

func (s *DefaultShopService) PaymentsConfig(ctx context.Context, shopID string) (*models.PaymentsConfig, error) {
	cfg, err := s.Repo.PaymentsConfig(ctx, shopID)
	if errors.Is(err, shopRepo.ErrSettingsMissing) {
		def := s.DefaultPaymentsConfig()
		return &def, nil
	}
	return cfg, err
}

func (s *DefaultShopService) UpdatePaymentsConfig(ctx context.Context, shopID string, cfg models.PaymentsConfig) (*models.PaymentsConfig, error) {
	if len(cfg.EnabledMethods) == 0 {
		return nil, fmt.Errorf("%w: at least one payment method must be enabled", ErrInvalidConfig)
	}
	// Keep display order and drop duplicates.
	enabled := make([]string, 0, len(cfg.EnabledMethods))
	for _, m := range cfg.EnabledMethods {
		if !slices.Contains(models.KnownPaymentMethods, m) {
			return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidConfig, m)
		}
	}
	for _, m := range models.KnownPaymentMethods {
		if slices.Contains(cfg.EnabledMethods, m) {
			enabled = append(enabled, m)
		}
	}
	cfg.EnabledMethods = enabled
	if cfg.Currency == "" {
		cfg.Currency = s.DefaultCurrency
	}
	cfg.UpdatedAt = s.Now().UTC()

	if err := s.Repo.SavePaymentsConfig(ctx, shopID, cfg); err != nil {
		return nil, err
	}
	s.Logger.Info("payments config updated", zap.String("shopID", shopID), zap.Strings("methods", enabled))
	return &cfg, nil
}

func (s *DefaultShopService) NotificationSettings(ctx context.Context, shopID string) (*models.NotificationSettings, error) {
	settings, err := s.Repo.NotificationSettings(ctx, shopID)
	if errors.Is(err, shopRepo.ErrSettingsMissing) {
		def := DefaultNotificationSettings()
		return &def, nil
	}
	return settings, err
}

func (s *DefaultShopService) UpdateNotificationSettings(ctx context.Context, shopID string, settings models.NotificationSettings) (*models.NotificationSettings, error) {
	if settings.ReminderLeadMinutes < 0 || settings.ReminderLeadMinutes > 7*24*60 {
		return nil, fmt.Errorf("%w: reminder lead must be between 0 and 10080 minutes", ErrInvalidConfig)
	}
	if settings.Reminders && settings.ReminderLeadMinutes == 0 {
		settings.ReminderLeadMinutes = DefaultNotificationSettings().ReminderLeadMinutes
	}
	settings.UpdatedAt = s.Now().UTC()
	if err := s.Repo.SaveNotificationSettings(ctx, shopID, settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *DefaultShopService) Notify(ctx context.Context, shopID, category, title, content string) (bool, error) {
	settings, err := s.NotificationSettings(ctx, shopID)
	if err != nil {
		return false, err
	}
	switch category {
	case models.NotificationNewBooking:
		if !settings.NewBooking {
			return false, nil
		}
	case models.NotificationReminder:
		if !settings.Reminders {
			return false, nil
		}
	}

	n := models.Notification{
		ID:        uuid.New().String(),
		Category:  category,
		Title:     title,
		Content:   content,
		Timestamp: s.Now().UTC(),
	}
	if err := s.Repo.AppendNotification(ctx, shopID, n); err != nil {
		return false, fmt.Errorf("append notification: %w", err)
	}
	return true, nil
}

func (s *DefaultShopService) Notifications(ctx context.Context, shopID string) ([]models.Notification, error) {
	return s.Repo.Notifications(ctx, shopID)
}

func (s *DefaultShopService) MarkNotificationRead(ctx context.Context, shopID, id string) error {
	return s.Repo.MarkNotificationRead(ctx, shopID, id)
}

func (s *DefaultShopService) MarkAllNotificationsRead(ctx context.Context, shopID string) (int, error) {
	return s.Repo.MarkAllNotificationsRead(ctx, shopID)
}
