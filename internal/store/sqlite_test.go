package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func buildSession(t *testing.T, date string) session.Session {
	t.Helper()
	s, err := session.New(session.Input{
		Date:       date,
		Duration:   "45",
		Instructor: "Sam",
		Weather:    "Light rain",
		Skills: []session.SkillRating{
			{Name: "Roundabouts", Rating: 4, Notes: "hesitating less"},
			{Name: "Controlled stop", Rating: 3},
			{Name: "Forward park", Rating: 5},
		},
		FocusSkills: []string{"Roundabouts", "Controlled stop", "Forward park"},
	})
	if err != nil {
		t.Fatalf("build session: %v", err)
	}
	return s
}

func TestOpenCreatesSchema(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='sessions'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "sessions" {
		t.Errorf("table name = %q, want sessions", name)
	}
}

func TestCreateAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := buildSession(t, "2025-04-01")
	if err := s.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}

	listed, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d sessions, want 1", len(listed))
	}

	got := listed[0]
	if got.ID != sess.ID {
		t.Errorf("id = %q, want %q", got.ID, sess.ID)
	}
	if got.Instructor != "Sam" || got.Weather != "Light rain" {
		t.Errorf("optional fields lost: %+v", got)
	}
	if got.Location != "" {
		t.Errorf("absent location came back as %q", got.Location)
	}
	if len(got.Skills) != len(sess.Skills) {
		t.Fatalf("skills count = %d, want %d", len(got.Skills), len(sess.Skills))
	}
	for i := range sess.Skills {
		if got.Skills[i] != sess.Skills[i] {
			t.Errorf("skill %d changed across round-trip: %+v != %+v",
				i, got.Skills[i], sess.Skills[i])
		}
	}
}

func TestListOrdersByDateDescending(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"2025-04-02", "2025-04-05", "2025-04-01"} {
		if err := s.Create(ctx, buildSession(t, date)); err != nil {
			t.Fatalf("create %s: %v", date, err)
		}
	}

	listed, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2025-04-05", "2025-04-02", "2025-04-01"}
	for i, date := range want {
		if listed[i].Date != date {
			t.Errorf("position %d: date = %s, want %s", i, listed[i].Date, date)
		}
	}
}

func TestListEmpty(t *testing.T) {
	s := openTestStore(t)
	listed, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("got %d sessions, want 0", len(listed))
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := buildSession(t, "2025-04-01")
	if err := s.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	listed, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("got %d sessions after delete, want 0", len(listed))
	}
}

func TestDeleteUnknownID(t *testing.T) {
	s := openTestStore(t)
	err := s.Delete(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := buildSession(t, "2025-04-01")
	if err := s.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := s.Create(ctx, sess)
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		t.Errorf("got %v, want *RepositoryError", err)
	}
}

func TestAggregatesSurviveRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := buildSession(t, "2025-04-01")
	wantAvg, err := stats.SessionAverage(sess)
	if err != nil {
		t.Fatalf("session average: %v", err)
	}
	wantSkill, err := stats.SkillAverage("Roundabouts", []session.Session{sess})
	if err != nil {
		t.Fatalf("skill average: %v", err)
	}

	if err := s.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}
	listed, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	gotAvg, err := stats.SessionAverage(listed[0])
	if err != nil {
		t.Fatalf("session average after round-trip: %v", err)
	}
	if gotAvg != wantAvg {
		t.Errorf("session average changed: %v != %v", gotAvg, wantAvg)
	}

	gotSkill, err := stats.SkillAverage("Roundabouts", listed)
	if err != nil {
		t.Fatalf("skill average after round-trip: %v", err)
	}
	if gotSkill != wantSkill {
		t.Errorf("skill average changed: %v != %v", gotSkill, wantSkill)
	}
}

func TestPing(t *testing.T) {
	s := openTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
}
