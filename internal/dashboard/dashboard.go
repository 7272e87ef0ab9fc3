package dashboard

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/core/common/validation"
)

// Filters narrow the sample. Zero values match everything; all set filters
// must hold.
type Filters struct {
	Role        Track  `json:"role" validate:"omitempty,oneof=all frontend backend fullstack"`
	Interviewer string `json:"interviewer"`
	DateFrom    string `json:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo      string `json:"dateTo" validate:"omitempty,datetime=2006-01-02"`
}

func (f Filters) ValidationMessages() map[string]string {
	return map[string]string{
		"role.oneof":        "Please select a valid role",
		"dateFrom.datetime": "Date From must be a date (YYYY-MM-DD)",
		"dateTo.datetime":   "Date To must be a date (YYYY-MM-DD)",
	}
}

func ParseFilters(v url.Values) (Filters, *internal.AppError) {
	f := Filters{
		Role:        Track(strings.ToLower(strings.TrimSpace(v.Get("role")))),
		Interviewer: strings.TrimSpace(v.Get("interviewer")),
		DateFrom:    strings.TrimSpace(v.Get("dateFrom")),
		DateTo:      strings.TrimSpace(v.Get("dateTo")),
	}
	if err := validation.Struct(f); err != nil {
		return Filters{}, err
	}
	return f, nil
}

func (f Filters) Active() bool {
	return (f.Role != "" && f.Role != TrackAll) || f.Interviewer != "" || f.DateFrom != "" || f.DateTo != ""
}

func (f Filters) Match(iv Interview) bool {
	if f.Role != "" && f.Role != TrackAll && iv.Track != f.Role {
		return false
	}
	if f.Interviewer != "" && !strings.Contains(strings.ToLower(iv.Interviewer), strings.ToLower(f.Interviewer)) {
		return false
	}
	day := iv.Date.Format(dateLayout)
	// the layout sorts lexically, so string comparison is date comparison
	if f.DateFrom != "" && day < f.DateFrom {
		return false
	}
	if f.DateTo != "" && day > f.DateTo {
		return false
	}
	return true
}

func Apply(sample []Interview, f Filters) []Interview {
	out := make([]Interview, 0, len(sample))
	for _, iv := range sample {
		if f.Match(iv) {
			out = append(out, iv)
		}
	}
	return out
}

type KPIs struct {
	InterviewsThisWeek   int     `json:"interviewsThisWeek"`
	AverageFeedbackScore float64 `json:"averageFeedbackScore"`
	NoShows              int     `json:"noShows"`
}

// Summarize counts interviews and no-shows and averages the scores of the
// interviews that happened, rounded to one decimal.
func Summarize(ivs []Interview) KPIs {
	var k KPIs
	total, scored := 0, 0
	for _, iv := range ivs {
		k.InterviewsThisWeek++
		if iv.NoShow {
			k.NoShows++
			continue
		}
		total += iv.Score
		scored++
	}
	if scored > 0 {
		k.AverageFeedbackScore = math.Round(float64(total)/float64(scored)*10) / 10
	}
	return k
}

type ChartPoint struct {
	Day        string `json:"day"`
	Interviews int    `json:"interviews"`
}

// Chart returns one point per weekday of the sample week, zero when filtered out.
func Chart(ivs []Interview) []ChartPoint {
	points := make([]ChartPoint, len(perDay))
	for d := range points {
		points[d].Day = WeekStart.AddDate(0, 0, d).Weekday().String()[:3]
	}
	for _, iv := range ivs {
		d := int(iv.Date.Sub(WeekStart) / (24 * time.Hour))
		if d >= 0 && d < len(points) {
			points[d].Interviews++
		}
	}
	return points
}
