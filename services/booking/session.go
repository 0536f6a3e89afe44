package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	draftRepo "barbershop/database/repository/draft"
	"barbershop/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	anyProfessional = "any"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func (s *DefaultBookingSessionService) StartSession(ctx context.Context, shopID string) (string, *models.BookingDraft, error) {
	sessionID := uuid.New().String()
	draft := models.BookingDraft{ShopID: shopID, UpdatedAt: s.now().UTC()}
	if err := s.DraftRepo.Save(ctx, shopID, sessionID, draft); err != nil {
		return "", nil, err
	}
	if s.Shop != nil {
		if err := s.Shop.Register(ctx, shopID); err != nil {
			s.logger().Warn("failed to register shop", zap.String("shopID", shopID), zap.Error(err))
		}
	}
	s.Metrics.SessionStarted(shopID)
	s.logger().Debug("booking session started", zap.String("shopID", shopID), zap.String("sessionID", sessionID))
	return sessionID, &draft, nil
}

// GetDraft returns the session's draft, or an empty one when none exists.
func (s *DefaultBookingSessionService) GetDraft(ctx context.Context, shopID, sessionID string) (*models.BookingDraft, error) {
	if !sessionIDPattern.MatchString(sessionID) {
		return nil, ErrInvalidSession
	}
	draft, err := s.DraftRepo.Load(ctx, shopID, sessionID)
	if errors.Is(err, draftRepo.ErrDraftNotFound) {
		return &models.BookingDraft{ShopID: shopID}, nil
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DefaultBookingSessionService) SelectService(ctx context.Context, shopID, sessionID, serviceID string) (*models.BookingDraft, error) {
	if strings.TrimSpace(serviceID) == "" {
		return nil, &InputError{Field: "serviceId", Message: "service is required"}
	}
	svc, err := s.Catalog.FindService(ctx, shopID, serviceID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, shopID, sessionID, "service", func(d *models.BookingDraft) {
		d.Service = svc.Ref()
	})
}

func (s *DefaultBookingSessionService) SelectProfessional(ctx context.Context, shopID, sessionID, professionalID string) (*models.BookingDraft, error) {
	professionalID = strings.TrimSpace(professionalID)
	if professionalID == "" || professionalID == anyProfessional {
		return s.update(ctx, shopID, sessionID, "professional", func(d *models.BookingDraft) {
			d.Professional = nil
		})
	}
	p, err := s.Catalog.FindProfessional(ctx, shopID, professionalID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, shopID, sessionID, "professional", func(d *models.BookingDraft) {
		d.Professional = p.Ref()
	})
}

func (s *DefaultBookingSessionService) SelectDateTime(ctx context.Context, shopID, sessionID, date, clock string) (*models.BookingDraft, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if err := validateTime(clock); err != nil {
		return nil, err
	}
	return s.update(ctx, shopID, sessionID, "datetime", func(d *models.BookingDraft) {
		d.Date = date
		d.Time = clock
	})
}

func (s *DefaultBookingSessionService) SetClient(ctx context.Context, shopID, sessionID string, client models.ClientInfo) (*models.BookingDraft, error) {
	if err := normalizeClient(&client); err != nil {
		return nil, err
	}
	return s.update(ctx, shopID, sessionID, "client", func(d *models.BookingDraft) {
		d.Client = &client
	})
}

// Merge writes whichever fields the patch carries, last write wins.
func (s *DefaultBookingSessionService) Merge(ctx context.Context, shopID, sessionID string, patch models.DraftPatch) (*models.BookingDraft, error) {
	if patch.Date != nil {
		if err := validateDate(*patch.Date); err != nil {
			return nil, err
		}
	}
	if patch.Time != nil {
		if err := validateTime(*patch.Time); err != nil {
			return nil, err
		}
	}
	if patch.Client != nil {
		client := *patch.Client
		if err := normalizeClient(&client); err != nil {
			return nil, err
		}
		patch.Client = &client
	}
	return s.update(ctx, shopID, sessionID, "merge", func(d *models.BookingDraft) {
		applyPatch(d, patch)
	})
}

func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, shopID, sessionID string) error {
	if !sessionIDPattern.MatchString(sessionID) {
		return ErrInvalidSession
	}
	return s.DraftRepo.Delete(ctx, shopID, sessionID)
}

// update is the read-modify-write every step goes through.
func (s *DefaultBookingSessionService) update(ctx context.Context, shopID, sessionID, step string, fn func(*models.BookingDraft)) (*models.BookingDraft, error) {
	draft, err := s.GetDraft(ctx, shopID, sessionID)
	if err != nil {
		return nil, err
	}
	fn(draft)
	draft.ShopID = shopID
	draft.UpdatedAt = s.now().UTC()
	if err := s.DraftRepo.Save(ctx, shopID, sessionID, *draft); err != nil {
		return nil, err
	}
	s.Metrics.StepMerged(step)
	return draft, nil
}

func applyPatch(d *models.BookingDraft, patch models.DraftPatch) {
	if patch.Service != nil {
		svc := *patch.Service
		d.Service = &svc
	}
	if patch.Professional != nil {
		p := *patch.Professional
		d.Professional = &p
	}
	if patch.Date != nil {
		d.Date = *patch.Date
	}
	if patch.Time != nil {
		d.Time = *patch.Time
	}
	if patch.Client != nil {
		c := *patch.Client
		d.Client = &c
	}
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return &InputError{Field: "date", Message: fmt.Sprintf("expected YYYY-MM-DD, got %q", date)}
	}
	return nil
}

func validateTime(clock string) error {
	if _, err := time.Parse(timeLayout, clock); err != nil || len(clock) != len(timeLayout) {
		return &InputError{Field: "time", Message: fmt.Sprintf("expected HH:MM, got %q", clock)}
	}
	return nil
}

func normalizeClient(c *models.ClientInfo) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	if c.Name == "" {
		return &InputError{Field: "name", Message: "client name is required"}
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return &InputError{Field: "email", Message: "invalid email"}
	}
	return nil
}
