package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lemongrove/internal/domain"
)

// Record binds a store key to a Go type. Absent records decode to Default.
type Record[T any] struct {
	Key     string
	Default func() T
}

// Load reads and decodes the record.
func (r Record[T]) Load(ctx context.Context, store Store) (T, error) {
	payload, err := store.Get(ctx, r.Key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return r.zero(), nil
		}
		var zero T
		return zero, fmt.Errorf("load %s: %w", r.Key, err)
	}
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", r.Key, err)
	}
	return out, nil
}

// Exists reports whether the record has ever been written.
func (r Record[T]) Exists(ctx context.Context, store Store) (bool, error) {
	_, err := store.Get(ctx, r.Key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Entry encodes v for a batch write.
func (r Record[T]) Entry(v T) (Entry, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Entry{}, fmt.Errorf("encode %s: %w", r.Key, err)
	}
	return Entry{Key: r.Key, Payload: payload}, nil
}

// Stage encodes v into batch.
func (r Record[T]) Stage(b *Batch, v T) error {
	e, err := r.Entry(v)
	if err != nil {
		return err
	}
	b.Add(e)
	return nil
}

// Save encodes v and overwrites the record.
func (r Record[T]) Save(ctx context.Context, store Store, v T) error {
	e, err := r.Entry(v)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, e.Key, e.Payload); err != nil {
		return fmt.Errorf("save %s: %w", r.Key, err)
	}
	return nil
}

func (r Record[T]) zero() T {
	if r.Default != nil {
		return r.Default()
	}
	var zero T
	return zero
}
