// Package session defines the practice-session record and its
// construction rules. A Session is built once, validated up front, and
// never mutated afterwards; persistence is someone else's job.
package session

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used everywhere a session date
// is stored or parsed. Dates in this layout order correctly as strings.
const DateLayout = "2006-01-02"

// SkillRating is one skill's assessment within a session. Rating 0
// means not practiced and is excluded from all averaging.
type SkillRating struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Notes  string `json:"notes,omitempty"`
	Focus  bool   `json:"is_focus,omitempty"`
}

// Rated reports whether the skill was actually practiced.
func (r SkillRating) Rated() bool {
	return r.Rating > 0
}

// Session is one logged practice occurrence. Skills always carries an
// entry for every catalog skill (rating 0 when unrated) plus any
// unrecognised names the caller supplied, in that order. FocusSkills
// and the Focus flags on Skills are kept bidirectionally consistent by
// the constructor.
type Session struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Duration     int           `json:"duration"` // minutes
	Instructor   string        `json:"instructor,omitempty"`
	Location     string        `json:"location,omitempty"`
	Weather      string        `json:"weather_conditions,omitempty"`
	Skills       []SkillRating `json:"skills"`
	GeneralNotes string        `json:"general_notes,omitempty"`
	FocusSkills  []string      `json:"focus_skills"`
}

// DateTime returns the session date as a time.Time (midnight UTC).
// A zero time is returned if the stored date is malformed.
func (s Session) DateTime() time.Time {
	t, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Rating returns the stored rating for a skill name, or 0 if the
// session has no entry for it.
func (s Session) Rating(name string) int {
	for _, r := range s.Skills {
		if r.Name == name {
			return r.Rating
		}
	}
	return 0
}

// ValidationError reports which rule a candidate session failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid session: %s %s", e.Field, e.Reason)
}
