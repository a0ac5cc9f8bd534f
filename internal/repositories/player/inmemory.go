package player

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage.
// Snapshots are stored encoded so callers never share state with the store.
type InMemoryRepository struct {
	clock clock.Clock

	mu    sync.RWMutex
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository. A nil clock uses the
// real one.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string][]byte),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Load returns the snapshot stored under Key
func (r *InMemoryRepository) Load(_ context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	r.mu.RLock()
	raw, ok := r.store[input.Key]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("no snapshot for %s", input.Key)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "corrupt snapshot for %s", input.Key)
	}
	return &LoadOutput{Player: rec.Player, SavedAt: rec.SavedAt}, nil
}

// Save stores the snapshot
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if input.Player == nil {
		return nil, errors.InvalidArgument(errPlayerNil)
	}

	rec := record{SavedAt: r.clock.Now().UTC(), Player: input.Player}
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	r.mu.Lock()
	r.store[input.Key] = raw
	r.mu.Unlock()

	return &SaveOutput{SavedAt: rec.SavedAt}, nil
}

// Delete removes the snapshot
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	r.mu.Lock()
	_, ok := r.store[input.Key]
	delete(r.store, input.Key)
	r.mu.Unlock()

	return &DeleteOutput{Deleted: ok}, nil
}

// Len reports how many snapshots are stored
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}
