package candidate

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/interview-dashboard/internal"
	types "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/dummyjson"
	"github.com/frahmantamala/interview-dashboard/internal/dummyjson"
	"github.com/frahmantamala/interview-dashboard/internal/listview"
)

const (
	msgListFailed   = "Failed to fetch candidates"
	msgDetailFailed = "Failed to fetch candidate details"
)

type UpstreamAPI interface {
	ListUsers(ctx context.Context, q dummyjson.UsersQuery) (*types.UsersPage, error)
	GetUser(ctx context.Context, id int64) (*types.User, error)
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

// List is one page of candidates as the upstream reported it, sorted locally.
type List struct {
	Candidates []Candidate
	Total      int
}

// List fetches the page for st and applies the local sort. Every call goes
// upstream; searches use the search endpoint.
func (s *Service) List(ctx context.Context, st listview.State) (*List, error) {
	resp, err := s.upstream.ListUsers(ctx, dummyjson.UsersQuery{
		Limit:  listview.PageSize,
		Skip:   st.Skip(),
		Search: st.Query,
	})
	if err != nil {
		s.logger.Error("failed to fetch candidates", "query", st.Query, "page", st.Page, "error", err)
		return nil, internal.NewExternalError(msgListFailed, internal.ErrCodeCandidatesUnavailable, err)
	}

	candidates := make([]Candidate, 0, len(resp.Users))
	for i := range resp.Users {
		candidates = append(candidates, *FromUpstream(&resp.Users[i]))
	}

	return &List{
		Candidates: listview.Sorted(candidates, st.Sort, Candidate.Field),
		Total:      resp.Total,
	}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Candidate, error) {
	user, err := s.upstream.GetUser(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch candidate", "candidate_id", id, "error", err)
		return nil, internal.NewExternalError(msgDetailFailed, internal.ErrCodeCandidateUnavailable, err)
	}
	return FromUpstream(user), nil
}
