// Package stats computes derived progress figures from a list of
// practice sessions. Every function is pure: the input slice is treated
// as an immutable snapshot, results are recomputed fresh on each call,
// and thin input degrades to zero/false/empty rather than failing.
// The only error condition is a stored rating outside 0-5, which is
// reported as *InvalidDataError and never clamped or dropped.
//
// Callers supply sessions sorted by date descending (most recent
// first); the order-sensitive functions re-sort a copy defensively.
package stats

import (
	"fmt"
	"slices"
	"strings"

	"github.com/solomonaboyeji/driving-star-tracker/internal/catalog"
	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
)

// DefaultSeriesLimit is how many recent sessions Series charts when the
// caller does not choose a limit.
const DefaultSeriesLimit = 10

// InvalidDataError reports a stored session that violates the rating
// invariant the engine relies on.
type InvalidDataError struct {
	SessionID string
	Skill     string
	Rating    int
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data: session %s skill %q rating %d outside 0-5",
		e.SessionID, e.Skill, e.Rating)
}

// checkRatings verifies the rating invariant for one session.
func checkRatings(s session.Session) error {
	for _, r := range s.Skills {
		if r.Rating < 0 || r.Rating > 5 {
			return &InvalidDataError{SessionID: s.ID, Skill: r.Name, Rating: r.Rating}
		}
	}
	return nil
}

func checkAll(sessions []session.Session) error {
	for _, s := range sessions {
		if err := checkRatings(s); err != nil {
			return err
		}
	}
	return nil
}

// byDateDesc returns a copy of sessions sorted most recent first.
// The input is never reordered.
func byDateDesc(sessions []session.Session) []session.Session {
	sorted := slices.Clone(sessions)
	slices.SortStableFunc(sorted, func(a, b session.Session) int {
		return strings.Compare(b.Date, a.Date)
	})
	return sorted
}

// SessionAverage is the mean rating across the session's rated skills.
// Unrated entries are excluded from the denominator, not zero-weighted.
// A session with no rated skills averages 0.
func SessionAverage(s session.Session) (float64, error) {
	if err := checkRatings(s); err != nil {
		return 0, err
	}
	sum, count := 0, 0
	for _, r := range s.Skills {
		if r.Rated() {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

// SkillAverage is the mean of one skill's rating across every session
// where it was rated. Sessions that skipped the skill contribute
// nothing to either side of the division. Never-rated skills average 0.
func SkillAverage(name string, sessions []session.Session) (float64, error) {
	if err := checkAll(sessions); err != nil {
		return 0, err
	}
	sum, count := 0, 0
	for _, s := range sessions {
		if rating := s.Rating(name); rating > 0 {
			sum += rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

// OverallAverage is the mean of the per-skill historical averages,
// taken only over catalog skills that have been rated at least once.
// Returns 0 when nothing has ever been rated.
func OverallAverage(sessions []session.Session) (float64, error) {
	if err := checkAll(sessions); err != nil {
		return 0, err
	}
	sum, count := 0.0, 0
	for _, name := range catalog.Skills() {
		avg, err := SkillAverage(name, sessions)
		if err != nil {
			return 0, err
		}
		if avg > 0 {
			sum += avg
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

// MeanRating is the mean across every rated entry of every session,
// weighting sessions by how many skills they rated.
func MeanRating(sessions []session.Session) (float64, error) {
	if err := checkAll(sessions); err != nil {
		return 0, err
	}
	sum, count := 0, 0
	for _, s := range sessions {
		for _, r := range s.Skills {
			if r.Rated() {
				sum += r.Rating
				count++
			}
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

// TotalHours sums session durations, converted from minutes to hours.
func TotalHours(sessions []session.Session) float64 {
	total := 0
	for _, s := range sessions {
		total += s.Duration
	}
	return float64(total) / 60
}
