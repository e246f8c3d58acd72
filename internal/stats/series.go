package stats

import (
	"fmt"
	"slices"

	"github.com/solomonaboyeji/driving-star-tracker/internal/catalog"
	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
)

// Point is one charted session in a progress series.
type Point struct {
	Label   string  `json:"label"`
	Date    string  `json:"date"`
	Average float64 `json:"average"`
}

// Series takes the limit most recent sessions and returns them in
// chronological order (oldest of the window first) with each session's
// average, ready for charting. A limit of 0 or less means
// DefaultSeriesLimit. The series is recomputed fresh on every call.
func Series(sessions []session.Session, limit int) ([]Point, error) {
	if limit <= 0 {
		limit = DefaultSeriesLimit
	}

	sorted := byDateDesc(sessions)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	slices.Reverse(sorted)

	points := make([]Point, 0, len(sorted))
	for i, s := range sorted {
		avg, err := SessionAverage(s)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{
			Label:   fmt.Sprintf("Session %d", i+1),
			Date:    s.Date,
			Average: avg,
		})
	}
	return points, nil
}

// SkillStanding is one catalog skill's historical average tagged with
// its problem-area flag.
type SkillStanding struct {
	Name        string  `json:"name"`
	Average     float64 `json:"average"`
	ProblemArea bool    `json:"problem_area"`
}

// Ranked computes every catalog skill's historical average and returns
// them sorted ascending by average, so the weakest skills surface
// first. Ties keep catalog order.
func Ranked(sessions []session.Session) ([]SkillStanding, error) {
	if err := checkAll(sessions); err != nil {
		return nil, err
	}

	names := catalog.Skills()
	standings := make([]SkillStanding, 0, len(names))
	for _, name := range names {
		avg, err := SkillAverage(name, sessions)
		if err != nil {
			return nil, err
		}
		standings = append(standings, SkillStanding{
			Name:        name,
			Average:     avg,
			ProblemArea: catalog.IsProblemArea(name),
		})
	}

	slices.SortStableFunc(standings, func(a, b SkillStanding) int {
		switch {
		case a.Average < b.Average:
			return -1
		case a.Average > b.Average:
			return 1
		default:
			return 0
		}
	})
	return standings, nil
}
