package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solomonaboyeji/driving-star-tracker/internal/catalog"
)

// DefaultMinFocusSkills is the minimum number of distinct focus skills
// a session must name to be saveable.
const DefaultMinFocusSkills = 3

// Input carries the raw form values for a candidate session. Duration
// arrives as entered, unparsed; optional fields may be empty.
type Input struct {
	ID           string // generated when empty
	Date         string
	Duration     string
	Instructor   string
	Location     string
	Weather      string
	GeneralNotes string
	Skills       []SkillRating
	FocusSkills  []string
}

// New validates in and produces an immutable Session, using the default
// focus-skill minimum. On failure it returns a *ValidationError naming
// the rule that failed; it never coerces invalid input into a
// partially-valid record.
func New(in Input) (Session, error) {
	return NewWithMinimum(in, DefaultMinFocusSkills)
}

// NewWithMinimum is New with a caller-chosen focus-skill minimum.
func NewWithMinimum(in Input, minFocus int) (Session, error) {
	if in.Date == "" {
		return Session{}, &ValidationError{Field: "date", Reason: "is required"}
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return Session{}, &ValidationError{
			Field:  "date",
			Reason: fmt.Sprintf("must be a %s date", DateLayout),
		}
	}

	duration, err := strconv.Atoi(strings.TrimSpace(in.Duration))
	if err != nil {
		return Session{}, &ValidationError{Field: "duration", Reason: "must be a whole number of minutes"}
	}
	if duration <= 0 {
		return Session{}, &ValidationError{Field: "duration", Reason: "must be greater than zero"}
	}

	for _, r := range in.Skills {
		if r.Rating < 0 || r.Rating > 5 {
			return Session{}, &ValidationError{
				Field:  "skills",
				Reason: fmt.Sprintf("rating %d for %q is outside 0-5", r.Rating, r.Name),
			}
		}
	}

	skills := fillCatalog(in.Skills)

	present := make(map[string]bool, len(skills))
	for _, r := range skills {
		present[r.Name] = true
	}

	focusSet := make(map[string]bool, len(in.FocusSkills))
	for _, name := range in.FocusSkills {
		if !present[name] {
			return Session{}, &ValidationError{
				Field:  "focus_skills",
				Reason: fmt.Sprintf("%q is not in the skill list", name),
			}
		}
		focusSet[name] = true
	}
	if len(focusSet) < minFocus {
		return Session{}, &ValidationError{
			Field:  "focus_skills",
			Reason: fmt.Sprintf("needs at least %d distinct skills, got %d", minFocus, len(focusSet)),
		}
	}

	// Normalise: flags mirror the focus set, and the focus list follows
	// skill order so equal selections always produce equal records.
	focusSkills := make([]string, 0, len(focusSet))
	for i := range skills {
		skills[i].Focus = focusSet[skills[i].Name]
		if skills[i].Focus {
			focusSkills = append(focusSkills, skills[i].Name)
		}
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	return Session{
		ID:           id,
		Date:         in.Date,
		Duration:     duration,
		Instructor:   in.Instructor,
		Location:     in.Location,
		Weather:      in.Weather,
		Skills:       skills,
		GeneralNotes: in.GeneralNotes,
		FocusSkills:  focusSkills,
	}, nil
}

// fillCatalog produces one entry per catalog skill in catalog order,
// overlaying any provided ratings. Names outside the catalog are kept,
// appended after the catalog entries in the order given.
func fillCatalog(provided []SkillRating) []SkillRating {
	byName := make(map[string]SkillRating, len(provided))
	for _, r := range provided {
		byName[r.Name] = r
	}

	names := catalog.Skills()
	skills := make([]SkillRating, 0, len(names))
	for _, name := range names {
		if r, ok := byName[name]; ok {
			skills = append(skills, r)
		} else {
			skills = append(skills, SkillRating{Name: name})
		}
	}
	for _, r := range provided {
		if !catalog.Contains(r.Name) {
			skills = append(skills, r)
		}
	}
	return skills
}
