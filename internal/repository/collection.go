package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cyber_portal/internal/store"
)

// Store keys of the portal collections
const (
	KeyUsers      = "users"
	KeyComplaints = "complaints"
	KeyFeedbacks  = "feedbacks"
	KeyAlerts     = "alerts"
)

var (
	ErrCorruptStore = errors.New("stored data is corrupt")
	ErrDuplicateKey = errors.New("record with this key already exists")
	ErrNotFound     = errors.New("record not found")
)

// loadCollection reads the JSON array stored under key. A missing key is an empty collection.
// Anything that does not decode into []T, or fails check, is reported as ErrCorruptStore.
func loadCollection[T any](ctx context.Context, s store.Store, key string, check func(T) error) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return decodeCollection(key, raw, ok, check)
}

func decodeCollection[T any](key, raw string, ok bool, check func(T) error) ([]T, error) {
	items := []T{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, key, err)
	}
	if items == nil { // stored "null"
		items = []T{}
	}
	if check != nil {
		for i, item := range items {
			if err := check(item); err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %v", ErrCorruptStore, key, i, err)
			}
		}
	}
	return items, nil
}

// updateCollection runs a read-modify-write of the whole collection, as every portal mutation does.
func updateCollection[T any](ctx context.Context, s store.Store, key string, check func(T) error, fn func([]T) ([]T, error)) error {
	return s.Update(ctx, key, func(current string, ok bool) (string, error) {
		items, err := decodeCollection(key, current, ok, check)
		if err != nil {
			return "", err
		}
		items, err = fn(items)
		if err != nil {
			return "", err
		}
		encoded, err := json.Marshal(items)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", key, err)
		}
		return string(encoded), nil
	})
}

// saveCollection overwrites the collection stored under key
func saveCollection[T any](ctx context.Context, s store.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(encoded)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
