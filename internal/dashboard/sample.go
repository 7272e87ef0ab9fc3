package dashboard

import "time"

type Track string

const (
	TrackAll       Track = "all"
	TrackFrontend  Track = "frontend"
	TrackBackend   Track = "backend"
	TrackFullstack Track = "fullstack"
)

func (t Track) Label() string {
	switch t {
	case TrackFrontend:
		return "Frontend"
	case TrackBackend:
		return "Backend"
	case TrackFullstack:
		return "Full Stack"
	default:
		return "All roles"
	}
}

// Interview is one entry of the sample week. Score is zero for no-shows.
type Interview struct {
	ID          int       `json:"id"`
	Date        time.Time `json:"date"`
	Interviewer string    `json:"interviewer"`
	Track       Track     `json:"track"`
	NoShow      bool      `json:"noShow"`
	Score       int       `json:"score"`
}

const dateLayout = "2006-01-02"

var (
	// WeekStart is the Monday the sample week begins on.
	WeekStart = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	perDay       = []int{12, 15, 8, 18, 14}
	interviewers = []string{"Sarah Chen", "Michael Brown", "Priya Patel", "David Kim"}
	tracks       = []Track{TrackFrontend, TrackBackend, TrackFullstack}
	noShows      = map[int]bool{10: true, 33: true, 56: true}
	scoreCycle   = []int{8, 7, 9, 8, 7}
)

// Sample builds the fixed interview week the dashboard reports on. The same
// call always yields the same data.
func Sample() []Interview {
	out := make([]Interview, 0, 67)
	completed := 0
	i := 0
	for day, count := range perDay {
		date := WeekStart.AddDate(0, 0, day)
		for n := 0; n < count; n++ {
			iv := Interview{
				ID:          i + 1,
				Date:        date,
				Interviewer: interviewers[i%len(interviewers)],
				Track:       tracks[i%len(tracks)],
				NoShow:      noShows[i],
			}
			if !iv.NoShow {
				iv.Score = scoreCycle[completed%len(scoreCycle)]
				completed++
			}
			out = append(out, iv)
			i++
		}
	}
	return out
}
