package memory

import (
	"context"
	"sync"

	"github.com/frahmantamala/interview-dashboard/internal/storage"
)

type StorageRepository struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

func NewStorageRepository() storage.RepositoryAPI {
	return &StorageRepository{entries: make(map[string]map[string]string)}
}

func (r *StorageRepository) Get(_ context.Context, scope, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[scope][key]
	return value, ok, nil
}

func (r *StorageRepository) Set(_ context.Context, scope, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	area, ok := r.entries[scope]
	if !ok {
		area = make(map[string]string)
		r.entries[scope] = area
	}
	area[key] = value
	return nil
}

func (r *StorageRepository) Delete(_ context.Context, scope, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	area, ok := r.entries[scope]
	if !ok {
		return nil
	}
	delete(area, key)
	if len(area) == 0 {
		delete(r.entries, scope)
	}
	return nil
}
