package schedule

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/interview-dashboard/internal"
	types "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/dummyjson"
)

const (
	StatusCompleted = "Completed"
	StatusPending   = "Pending"
)

// Item is one schedule entry. The upstream has no dates, so none are shown.
type Item struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Status      string `json:"status"`
	CandidateID int64  `json:"candidateId"`
}

func FromUpstream(t types.Todo) Item {
	status := StatusPending
	if t.Completed {
		status = StatusCompleted
	}
	return Item{
		ID:          t.ID,
		Description: t.Todo,
		Completed:   t.Completed,
		Status:      status,
		CandidateID: t.UserID,
	}
}

type UpstreamAPI interface {
	TodosByUser(ctx context.Context, userID int64) (*types.TodosPage, error)
}

type Service struct {
	upstream UpstreamAPI
	logger   *slog.Logger
}

func NewService(upstream UpstreamAPI, logger *slog.Logger) *Service {
	return &Service{
		upstream: upstream,
		logger:   logger,
	}
}

func (s *Service) ForCandidate(ctx context.Context, candidateID int64) ([]Item, error) {
	resp, err := s.upstream.TodosByUser(ctx, candidateID)
	if err != nil {
		s.logger.Error("failed to fetch schedule", "candidate_id", candidateID, "error", err)
		return nil, internal.NewExternalError("Failed to fetch schedule", internal.ErrCodeScheduleUnavailable, err)
	}

	items := make([]Item, 0, len(resp.Todos))
	for _, t := range resp.Todos {
		items = append(items, FromUpstream(t))
	}
	return items, nil
}
