package chatRepo

import (
	"context"
	"fmt"

	"barbershop/database/kv"
	"barbershop/models"
)

// maxMessages caps each shop's transcript.
const maxMessages = 500

type ChatRepository interface {
	// Append assigns msg the shop's next sequence number and stores it.
	Append(ctx context.Context, shopID string, msg *models.ChatMessage) error
	// List returns the retained transcript, oldest first.
	List(ctx context.Context, shopID string) ([]models.ChatMessage, error)
	// After returns retained messages whose sequence number is above seq.
	After(ctx context.Context, shopID string, seq int64) ([]models.ChatMessage, error)
	Count(ctx context.Context, shopID string) (int64, error)
}

type kvChatRepo struct {
	store kv.Store
}

func NewKVChatRepo(store kv.Store) ChatRepository {
	return &kvChatRepo{store: store}
}

func (r *kvChatRepo) Append(ctx context.Context, shopID string, msg *models.ChatMessage) error {
	seq, err := r.store.Incr(ctx, kv.ChatSeqKey(shopID))
	if err != nil {
		return fmt.Errorf("next chat sequence: %w", err)
	}
	msg.Seq = seq
	if _, err := kv.AppendJSON(ctx, r.store, kv.ChatKey(shopID), msg, maxMessages); err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

func (r *kvChatRepo) List(ctx context.Context, shopID string) ([]models.ChatMessage, error) {
	msgs, err := kv.RangeJSON[models.ChatMessage](ctx, r.store, kv.ChatKey(shopID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return msgs, nil
}

// The list is trimmed from the head, so list positions drift once it is
// full. Sequence numbers do not.
func (r *kvChatRepo) After(ctx context.Context, shopID string, seq int64) ([]models.ChatMessage, error) {
	msgs, err := r.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for i, m := range msgs {
		if m.Seq > seq {
			return msgs[i:], nil
		}
	}
	return nil, nil
}

func (r *kvChatRepo) Count(ctx context.Context, shopID string) (int64, error) {
	return r.store.Len(ctx, kv.ChatKey(shopID))
}
