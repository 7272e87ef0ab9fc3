package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeSessionCreated    = "session.created"
	EventTypeSessionCleared    = "session.cleared"
	EventTypeFeedbackSubmitted = "feedback.submitted"
	EventTypeRoleAssigned      = "role.assigned"
)

func newBaseEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type SessionCreatedEvent struct {
	BaseEvent
	Scope    string `json:"scope"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewSessionCreatedEvent(scope string, userID int64, username, role string) *SessionCreatedEvent {
	return &SessionCreatedEvent{
		BaseEvent: newBaseEvent(EventTypeSessionCreated, map[string]interface{}{
			"scope":    scope,
			"user_id":  userID,
			"username": username,
			"role":     role,
		}),
		Scope:    scope,
		UserID:   userID,
		Username: username,
		Role:     role,
	}
}

type SessionClearedEvent struct {
	BaseEvent
	Scope  string `json:"scope"`
	Reason string `json:"reason"`
}

const (
	ClearReasonLogout  = "logout"
	ClearReasonExpired = "expired"
)

func NewSessionClearedEvent(scope, reason string) *SessionClearedEvent {
	return &SessionClearedEvent{
		BaseEvent: newBaseEvent(EventTypeSessionCleared, map[string]interface{}{
			"scope":  scope,
			"reason": reason,
		}),
		Scope:  scope,
		Reason: reason,
	}
}

type FeedbackSubmittedEvent struct {
	BaseEvent
	PostID      int64 `json:"post_id"`
	CandidateID int64 `json:"candidate_id"`
	SubmittedBy int64 `json:"submitted_by"`
	Score       int   `json:"score"`
}

func NewFeedbackSubmittedEvent(postID, candidateID, submittedBy int64, score int) *FeedbackSubmittedEvent {
	return &FeedbackSubmittedEvent{
		BaseEvent: newBaseEvent(EventTypeFeedbackSubmitted, map[string]interface{}{
			"post_id":      postID,
			"candidate_id": candidateID,
			"submitted_by": submittedBy,
			"score":        score,
		}),
		PostID:      postID,
		CandidateID: candidateID,
		SubmittedBy: submittedBy,
		Score:       score,
	}
}

type RoleAssignedEvent struct {
	BaseEvent
	UserID     int64  `json:"user_id"`
	Role       string `json:"role"`
	AssignedBy int64  `json:"assigned_by"`
}

func NewRoleAssignedEvent(userID int64, role string, assignedBy int64) *RoleAssignedEvent {
	return &RoleAssignedEvent{
		BaseEvent: newBaseEvent(EventTypeRoleAssigned, map[string]interface{}{
			"user_id":     userID,
			"role":        role,
			"assigned_by": assignedBy,
		}),
		UserID:     userID,
		Role:       role,
		AssignedBy: assignedBy,
	}
}
