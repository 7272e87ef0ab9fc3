package storage

import "context"

// RepositoryAPI is a string key-value area partitioned by scope. One scope
// belongs to one client; nothing is shared between scopes.
type RepositoryAPI interface {
	Get(ctx context.Context, scope, key string) (value string, found bool, err error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
}
