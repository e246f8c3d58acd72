package sessions

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/solomonaboyeji/driving-star-tracker/internal/screen"
	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
	"github.com/solomonaboyeji/driving-star-tracker/internal/store"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/components"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/layout"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/theme"
)

type loadedMsg struct {
	Sessions []session.Session
	Err      error
}

type deletedMsg struct {
	Err error
}

// SessionsScreen lists logged lessons with expandable skill detail.
type SessionsScreen struct {
	repo     store.Repository
	sessions []session.Session
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*SessionsScreen)(nil)
var _ screen.KeyHintProvider = (*SessionsScreen)(nil)

// New creates a new SessionsScreen.
func New(repo store.Repository) *SessionsScreen {
	return &SessionsScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *SessionsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.repo.List(context.Background())
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{Sessions: sessions}
	}
}

func (s *SessionsScreen) Title() string {
	return "Sessions"
}

func (s *SessionsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "d", Description: "Delete"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SessionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			if s.selected >= len(s.sessions) {
				s.selected = len(s.sessions) - 1
			}
			if s.selected < 0 {
				s.selected = 0
			}
		}
		s.loaded = true
		return s, func() tea.Msg {
			return screen.TotalsMsg{
				Lessons: len(s.sessions),
				Hours:   stats.TotalHours(s.sessions),
			}
		}

	case deletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.expanded = make(map[int]bool)
		return s, s.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "d":
			if s.selected < len(s.sessions) {
				id := s.sessions[s.selected].ID
				return s, func() tea.Msg {
					return deletedMsg{Err: s.repo.Delete(context.Background(), id)}
				}
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *SessionsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading sessions...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons yet. Log one with `drivestar log`.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		avg, err := stats.SessionAverage(sess)
		if err != nil {
			avg = 0
		}

		withStr := ""
		if sess.Instructor != "" {
			withStr = "  with " + sess.Instructor
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %3d min  avg %.1f%s", prefix, sess.Date, sess.Duration, avg, withStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			s.renderDetail(&b, sess, width)
		}
	}

	return b.String()
}

func (s *SessionsScreen) renderDetail(b *strings.Builder, sess session.Session, width int) {
	for _, sk := range sess.Skills {
		if !sk.Rated() {
			continue
		}
		line := fmt.Sprintf("    %-34s %s", sk.Name, components.Stars(sk.Rating))
		if sk.Notes != "" {
			line += "  " + theme.Hint.Render(sk.Notes)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
		b.WriteString("\n")
	}
	if len(sess.FocusSkills) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("    Next focus: "+strings.Join(sess.FocusSkills, ", "))))
		b.WriteString("\n")
	}
	if sess.GeneralNotes != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("    "+sess.GeneralNotes)))
		b.WriteString("\n")
	}
}
