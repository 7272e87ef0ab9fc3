package feedback

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/interview-dashboard/internal"
	types "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/dummyjson"
	"github.com/frahmantamala/interview-dashboard/internal/core/events"
)

type UpstreamAPI interface {
	PostsByUser(ctx context.Context, userID int64) (*types.PostsPage, error)
	AddPost(ctx context.Context, post types.NewPost) (*types.Post, error)
}

type Service struct {
	upstream  UpstreamAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(upstream UpstreamAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		upstream:  upstream,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) ForCandidate(ctx context.Context, candidateID int64) ([]Feedback, error) {
	resp, err := s.upstream.PostsByUser(ctx, candidateID)
	if err != nil {
		s.logger.Error("failed to fetch feedback", "candidate_id", candidateID, "error", err)
		return nil, internal.NewExternalError("Failed to fetch feedback", internal.ErrCodeFeedbackUnavailable, err)
	}

	list := make([]Feedback, 0, len(resp.Posts))
	for i := range resp.Posts {
		list = append(list, FromUpstream(&resp.Posts[i]))
	}
	return list, nil
}

// Submit posts the feedback upstream. The caller must have validated dto.
// The demo API echoes the post back without storing it.
func (s *Service) Submit(ctx context.Context, candidateID, submittedBy int64, dto SubmitDTO) (*Feedback, error) {
	post, err := s.upstream.AddPost(ctx, types.NewPost{
		Title:  Title(dto.Score),
		Body:   Body(dto.Strengths, dto.AreasForImprovement),
		UserID: candidateID,
	})
	if err != nil {
		s.logger.Error("failed to submit feedback", "candidate_id", candidateID, "error", err)
		return nil, internal.NewExternalError("Failed to submit feedback", internal.ErrCodeFeedbackNotSubmitted, err)
	}

	created := FromUpstream(post)
	s.logger.Info("feedback submitted", "candidate_id", candidateID, "post_id", created.ID, "score", dto.Score)
	_ = s.publisher.Publish(ctx, events.NewFeedbackSubmittedEvent(created.ID, candidateID, submittedBy, dto.Score))

	return &created, nil
}
