package support

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	chatRepo "barbershop/database/repository/chat"
	"barbershop/metrics"
	"barbershop/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxMessageRunes = 2000

var (
	ErrEmptyMessage   = errors.New("message text is empty")
	ErrMessageTooLong = fmt.Errorf("message exceeds %d characters", maxMessageRunes)
	ErrUnknownSender  = errors.New("unknown sender")

	// ErrSenderNotAllowed is returned when a caller posts as someone it
	// cannot speak for.
	ErrSenderNotAllowed = errors.New("sender not allowed")
)

// ChatService is the shop's support conversation.
type ChatService interface {
	Send(ctx context.Context, shopID, sender, text string) (*models.ChatMessage, error)
	SendAsClient(ctx context.Context, shopID, sender, text string) (*models.ChatMessage, error)
	Messages(ctx context.Context, shopID string) ([]models.ChatMessage, error)
	// Since returns the messages after the first n ever sent to the shop,
	// limited to what the capped transcript still holds.
	Since(ctx context.Context, shopID string, n int64) ([]models.ChatMessage, error)
	// Poll calls fn with the full transcript once at start and again every
	// time it changes, until ctx is done or fn returns an error.
	Poll(ctx context.Context, shopID string, interval time.Duration, fn func([]models.ChatMessage) error) error
}

type DefaultChatService struct {
	Repo    chatRepo.ChatRepository
	Metrics *metrics.BookingMetrics
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewChatService(repo chatRepo.ChatRepository, m *metrics.BookingMetrics, logger *zap.Logger) *DefaultChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultChatService{Repo: repo, Metrics: m, Logger: logger, Now: time.Now}
}

func (s *DefaultChatService) Send(ctx context.Context, shopID, sender, text string) (*models.ChatMessage, error) {
	switch sender {
	case models.ChatSenderClient, models.ChatSenderShop, models.ChatSenderSupport:
	case "":
		sender = models.ChatSenderShop
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSender, sender)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > maxMessageRunes {
		return nil, ErrMessageTooLong
	}

	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    sender,
		Text:      text,
		Timestamp: s.Now().UTC(),
	}
	if err := s.Repo.Append(ctx, shopID, &msg); err != nil {
		return nil, err
	}
	s.Metrics.ChatMessage(sender)
	s.Logger.Debug("chat message appended", zap.String("shopID", shopID), zap.String("sender", sender))
	return &msg, nil
}

// SendAsClient posts on behalf of an unauthenticated visitor, who can only
// speak as the client.
func (s *DefaultChatService) SendAsClient(ctx context.Context, shopID, sender, text string) (*models.ChatMessage, error) {
	switch sender {
	case "", models.ChatSenderClient:
	case models.ChatSenderShop, models.ChatSenderSupport:
		return nil, fmt.Errorf("%w: %q", ErrSenderNotAllowed, sender)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSender, sender)
	}
	return s.Send(ctx, shopID, models.ChatSenderClient, text)
}

func (s *DefaultChatService) Messages(ctx context.Context, shopID string) ([]models.ChatMessage, error) {
	return s.Repo.List(ctx, shopID)
}

func (s *DefaultChatService) Since(ctx context.Context, shopID string, n int64) ([]models.ChatMessage, error) {
	return s.Repo.After(ctx, shopID, n)
}

func (s *DefaultChatService) Poll(ctx context.Context, shopID string, interval time.Duration, fn func([]models.ChatMessage) error) error {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastLen, lastID := -1, ""
	for {
		msgs, err := s.Messages(ctx, shopID)
		if err != nil {
			// A failed read keeps the previous transcript on screen.
			s.Logger.Warn("chat poll failed", zap.String("shopID", shopID), zap.Error(err))
		} else if changed(msgs, lastLen, lastID) {
			lastLen, lastID = len(msgs), tailID(msgs)
			if err := fn(msgs); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// The transcript is capped, so a full list can change without growing.
func changed(msgs []models.ChatMessage, lastLen int, lastID string) bool {
	return len(msgs) != lastLen || tailID(msgs) != lastID
}

func tailID(msgs []models.ChatMessage) string {
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].ID
}
