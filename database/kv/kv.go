// Package kv is the untyped key-value namespace every store in the service
// writes into. Values are opaque bytes, normally JSON.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX writes value only when key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	// Incr adds one to the counter at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Append pushes value to the tail of the list at key. When keep > 0 the
	// list is trimmed to its newest keep entries. It returns the list length
	// before trimming.
	Append(ctx context.Context, key string, value []byte, keep int64) (int64, error)
	// Range returns list entries start..stop inclusive; negative indexes
	// count from the tail as in Redis.
	Range(ctx context.Context, key string, start, stop int64) ([][]byte, error)
	Len(ctx context.Context, key string) (int64, error)
	SetIndex(ctx context.Context, key string, index int64, value []byte) error

	AddMember(ctx context.Context, key, member string) error
	Members(ctx context.Context, key string) ([]string, error)

	Ping(ctx context.Context) error
}

// GetJSON decodes the value at key into out.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("kv: decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw, ttl)
}

// AppendJSON encodes v and appends it to the list at key.
func AppendJSON(ctx context.Context, s Store, key string, v any, keep int64) (int64, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("kv: encode %s: %w", key, err)
	}
	return s.Append(ctx, key, raw, keep)
}

// RangeJSON decodes list entries start..stop into a slice of T.
func RangeJSON[T any](ctx context.Context, s Store, key string, start, stop int64) ([]T, error) {
	raws, err := s.Range(ctx, key, start, stop)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("kv: decode %s[%d]: %w", key, start+int64(i), err)
		}
		out = append(out, item)
	}
	return out, nil
}
