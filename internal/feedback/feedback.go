package feedback

import (
	"fmt"
	"strings"

	types "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/dummyjson"
)

// Feedback is a post on the candidate. Only this service writes the
// "Feedback - Score" shape; other posts are shown as they are.
type Feedback struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	CandidateID int64    `json:"candidateId"`
	Tags        []string `json:"tags"`
	Likes       int      `json:"likes"`
	Dislikes    int      `json:"dislikes"`
}

func FromUpstream(p *types.Post) Feedback {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Feedback{
		ID:          p.ID,
		Title:       p.Title,
		Body:        p.Body,
		CandidateID: p.UserID,
		Tags:        tags,
		Likes:       p.Reactions.Likes,
		Dislikes:    p.Reactions.Dislikes,
	}
}

func Title(score int) string {
	return fmt.Sprintf("Feedback - Score: %d/10", score)
}

func Body(strengths, areas string) string {
	return fmt.Sprintf("Strengths: %s\n\nAreas for Improvement: %s",
		strings.TrimSpace(strengths), strings.TrimSpace(areas))
}

// Prepend puts the newly submitted entry in front of the fetched list.
func Prepend(submitted Feedback, list []Feedback) []Feedback {
	out := make([]Feedback, 0, len(list)+1)
	out = append(out, submitted)
	return append(out, list...)
}
