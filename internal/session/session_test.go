package session

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/solomonaboyeji/driving-star-tracker/internal/catalog"
)

// validInput returns an Input that passes every rule.
func validInput() Input {
	return Input{
		Date:     "2025-03-14",
		Duration: "60",
		Skills: []SkillRating{
			{Name: "Roundabouts", Rating: 4},
			{Name: "Controlled stop", Rating: 3, Notes: "smoother today"},
		},
		FocusSkills: []string{"Roundabouts", "Controlled stop", "Forward park"},
	}
}

func TestNewValid(t *testing.T) {
	s, err := New(validInput())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.ID == "" {
		t.Error("expected a generated id")
	}
	if s.Duration != 60 {
		t.Errorf("duration = %d, want 60", s.Duration)
	}
	if got := s.Rating("Roundabouts"); got != 4 {
		t.Errorf("Roundabouts rating = %d, want 4", got)
	}
}

func TestNewFillsFullCatalog(t *testing.T) {
	s, err := New(validInput())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(s.Skills) != catalog.Count() {
		t.Fatalf("got %d skill entries, want %d", len(s.Skills), catalog.Count())
	}
	for i, name := range catalog.Skills() {
		if s.Skills[i].Name != name {
			t.Fatalf("entry %d = %q, want catalog order %q", i, s.Skills[i].Name, name)
		}
	}
	// Unprovided skills are kept, unrated.
	if got := s.Rating("Eyesight test"); got != 0 {
		t.Errorf("unprovided skill rating = %d, want 0", got)
	}
}

func TestNewKeepsUnknownSkills(t *testing.T) {
	in := validInput()
	in.Skills = append(in.Skills, SkillRating{Name: "Hill starts (custom)", Rating: 2})

	s, err := New(in)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(s.Skills) != catalog.Count()+1 {
		t.Fatalf("got %d entries, want %d", len(s.Skills), catalog.Count()+1)
	}
	last := s.Skills[len(s.Skills)-1]
	if last.Name != "Hill starts (custom)" || last.Rating != 2 {
		t.Errorf("unknown skill not preserved: %+v", last)
	}
}

func TestNewFocusConsistency(t *testing.T) {
	s, err := New(validInput())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	flagged := make(map[string]bool)
	for _, r := range s.Skills {
		if r.Focus {
			flagged[r.Name] = true
		}
	}
	if len(flagged) != len(s.FocusSkills) {
		t.Fatalf("%d flagged entries, %d focus skills", len(flagged), len(s.FocusSkills))
	}
	for _, name := range s.FocusSkills {
		if !flagged[name] {
			t.Errorf("focus skill %q has no flagged entry", name)
		}
	}
}

func TestNewValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"missing date", func(in *Input) { in.Date = "" }, "date"},
		{"malformed date", func(in *Input) { in.Date = "14/03/2025" }, "date"},
		{"missing duration", func(in *Input) { in.Duration = "" }, "duration"},
		{"non-numeric duration", func(in *Input) { in.Duration = "an hour" }, "duration"},
		{"zero duration", func(in *Input) { in.Duration = "0" }, "duration"},
		{"negative duration", func(in *Input) { in.Duration = "-30" }, "duration"},
		{"rating above range", func(in *Input) { in.Skills[0].Rating = 6 }, "skills"},
		{"rating below range", func(in *Input) { in.Skills[0].Rating = -1 }, "skills"},
		{"too few focus skills", func(in *Input) { in.FocusSkills = in.FocusSkills[:2] }, "focus_skills"},
		{"focus skill not in list", func(in *Input) {
			in.FocusSkills = []string{"Roundabouts", "Controlled stop", "Motorway driving"}
		}, "focus_skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := New(in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestNewDuplicateFocusSkillsCountOnce(t *testing.T) {
	in := validInput()
	in.FocusSkills = []string{"Roundabouts", "Roundabouts", "Controlled stop"}

	_, err := New(in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError for 2 distinct focus skills, got %v", err)
	}
}

func TestNewWithMinimum(t *testing.T) {
	in := validInput()
	in.FocusSkills = []string{"Roundabouts"}

	if _, err := NewWithMinimum(in, 1); err != nil {
		t.Fatalf("NewWithMinimum(1): %v", err)
	}
	if _, err := NewWithMinimum(in, 2); err == nil {
		t.Fatal("NewWithMinimum(2): expected error")
	}
}

func TestNewKeepsSuppliedID(t *testing.T) {
	in := validInput()
	in.ID = "fixed-id"

	s, err := New(in)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.ID != "fixed-id" {
		t.Errorf("id = %q, want fixed-id", s.ID)
	}
}

func TestJSONRoundTripPreservesSkills(t *testing.T) {
	s, err := New(validInput())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Session
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(back.Skills) != len(s.Skills) {
		t.Fatalf("skills lost: %d != %d", len(back.Skills), len(s.Skills))
	}
	for i := range s.Skills {
		if back.Skills[i] != s.Skills[i] {
			t.Errorf("skill %d changed: %+v != %+v", i, back.Skills[i], s.Skills[i])
		}
	}
	if len(back.FocusSkills) != len(s.FocusSkills) {
		t.Errorf("focus skills lost: %d != %d", len(back.FocusSkills), len(s.FocusSkills))
	}
}

func TestDateTime(t *testing.T) {
	s := Session{Date: "2025-03-14"}
	got := s.DateTime()
	if got.Year() != 2025 || got.Month() != 3 || got.Day() != 14 {
		t.Errorf("DateTime = %v", got)
	}

	if !(Session{Date: "garbage"}).DateTime().IsZero() {
		t.Error("malformed date should give zero time")
	}
}
