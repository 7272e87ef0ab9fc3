package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/page"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ForCandidate(ctx context.Context, candidateID int64) ([]Feedback, error)
	Submit(ctx context.Context, candidateID, submittedBy int64, dto SubmitDTO) (*Feedback, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

type SubmitResult struct {
	Feedback     Feedback           `json:"feedback"`
	Items        []Feedback         `json:"items"`
	Notification *page.Notification `json:"notification"`
}

type submitFailure struct {
	Error        *internal.AppError `json:"error"`
	Notification *page.Notification `json:"notification,omitempty"`
}

// Submit records feedback for the candidate in the URL. Callers without
// canSubmitFeedback are sent back to the feedback tab.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	candidateID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("Submit: invalid candidate ID", "id", idStr)
		h.HandleError(w, internal.NewValidationFieldError("id", "invalid candidate ID", internal.ErrCodeInvalidID))
		return
	}

	view := access.FromContext(r.Context())
	if !access.Allowed(view, access.RequirePermission(rbac.CanSubmitFeedback)) {
		h.Logger.Warn("Submit: feedback not allowed for role", "candidate_id", candidateID, "role", view.Role())
		h.Redirect(w, r, page.CandidateLink(candidateID, "feedback"))
		return
	}

	var dto SubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if verr := dto.Validate(); verr != nil {
		h.WriteJSON(w, verr.StatusCode, submitFailure{Error: verr})
		return
	}

	created, err := h.Service.Submit(r.Context(), candidateID, view.Session.UserID, dto)
	if err != nil {
		appErr, ok := internal.IsAppError(err)
		if !ok {
			appErr = internal.NewInternalError("An unexpected error occurred", err)
		}
		h.WriteJSON(w, appErr.StatusCode, submitFailure{
			Error:        appErr,
			Notification: page.Failure("Submission Failed", appErr.Message),
		})
		return
	}

	// a failed refetch still returns the new entry
	list, err := h.Service.ForCandidate(r.Context(), candidateID)
	if err != nil {
		h.Logger.Warn("Submit: feedback list unavailable after submit", "candidate_id", candidateID, "error", err)
	}

	h.WriteJSON(w, http.StatusCreated, SubmitResult{
		Feedback:     *created,
		Items:        Prepend(*created, list),
		Notification: page.Success("Feedback Submitted", "Your feedback has been recorded successfully."),
	})
}
