package metadata

import (
	"context"
	"maps"
	"sync"
)

// MemoryRepository keeps values in process memory. It suits callers that do
// not want the identity to outlive the process, and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: make(map[string]string)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value string) error {
	r.mu.Lock()
	r.values[key] = value
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.values, key)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.values), nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	clear(r.values)
	r.mu.Unlock()
	return nil
}

// Tx stages fn's writes on a copy and swaps it in on success. Other calls
// block until fn returns.
func (r *MemoryRepository) Tx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := &MemoryRepository{values: maps.Clone(r.values)}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	r.values = staged.values
	return nil
}
