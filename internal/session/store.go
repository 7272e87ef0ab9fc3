package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/frahmantamala/interview-dashboard/internal/storage"
)

// Store persists at most one Session per scope. It never returns errors:
// a failed write is dropped and a failed or corrupt read looks like no session.
type Store struct {
	repo   storage.RepositoryAPI
	logger *slog.Logger
}

func NewStore(repo storage.RepositoryAPI, logger *slog.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger,
	}
}

func (s *Store) Save(ctx context.Context, scope string, sess Session) {
	data, err := json.Marshal(sess)
	if err != nil {
		s.logger.Warn("session store: failed to encode session", "scope", scope, "error", err)
		return
	}
	if err := s.repo.Set(ctx, scope, StorageKey, string(data)); err != nil {
		s.logger.Warn("session store: failed to save session", "scope", scope, "error", err)
	}
}

func (s *Store) Load(ctx context.Context, scope string) *Session {
	raw, found, err := s.repo.Get(ctx, scope, StorageKey)
	if err != nil {
		s.logger.Warn("session store: failed to read session", "scope", scope, "error", err)
		return nil
	}
	if !found || raw == "" {
		return nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.logger.Warn("session store: discarding unreadable session", "scope", scope, "error", err)
		return nil
	}
	return &sess
}

func (s *Store) Clear(ctx context.Context, scope string) {
	if err := s.repo.Delete(ctx, scope, StorageKey); err != nil {
		s.logger.Warn("session store: failed to clear session", "scope", scope, "error", err)
	}
}
