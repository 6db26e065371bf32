// Package snapshot persists named JSON records that are overwritten in full on
// every mutation.
package snapshot

import (
	"context"
)

// Entry is one named record payload.
type Entry struct {
	Key     string
	Payload []byte
}

// Store is a key-value store of whole-record snapshots.
type Store interface {
	// Get returns the stored payload or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites a single record.
	Put(ctx context.Context, key string, payload []byte) error
	// PutMany overwrites all entries atomically: either every entry is
	// written or none is.
	PutMany(ctx context.Context, entries []Entry) error
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}

// Batch collects entries for a single atomic PutMany.
type Batch struct {
	entries []Entry
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Add stages an entry, replacing an earlier one with the same key.
func (b *Batch) Add(e Entry) {
	for i := range b.entries {
		if b.entries[i].Key == e.Key {
			b.entries[i] = e
			return
		}
	}
	b.entries = append(b.entries, e)
}

// Entries returns the staged entries in insertion order.
func (b *Batch) Entries() []Entry {
	return b.entries
}

// Commit writes the batch to store.
func (b *Batch) Commit(ctx context.Context, store Store) error {
	if len(b.entries) == 0 {
		return nil
	}
	return store.PutMany(ctx, b.entries)
}
