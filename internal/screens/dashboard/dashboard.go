package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/solomonaboyeji/driving-star-tracker/internal/screen"
	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
	"github.com/solomonaboyeji/driving-star-tracker/internal/store"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/layout"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/theme"
)

type loadedMsg struct {
	Lessons   int
	Hours     float64
	Overall   float64
	Improving bool
	Ranked    []stats.SkillStanding
	Err       error
}

// DashboardScreen shows headline numbers and the weakest skills.
type DashboardScreen struct {
	repo      store.Repository
	lessons   int
	hours     float64
	overall   float64
	improving bool
	ranked    []stats.SkillStanding
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(repo store.Repository) *DashboardScreen {
	return &DashboardScreen{repo: repo}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.repo.List(context.Background())
		if err != nil {
			return loadedMsg{Err: err}
		}

		overall, err := stats.OverallAverage(sessions)
		if err != nil {
			return loadedMsg{Err: err}
		}
		trend, err := stats.TrendSignal(sessions)
		if err != nil {
			return loadedMsg{Err: err}
		}
		ranked, err := stats.Ranked(sessions)
		if err != nil {
			return loadedMsg{Err: err}
		}

		return loadedMsg{
			Lessons:   len(sessions),
			Hours:     stats.TotalHours(sessions),
			Overall:   overall,
			Improving: trend.Improving,
			Ranked:    ranked,
		}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.lessons = msg.Lessons
			s.hours = msg.Hours
			s.overall = msg.Overall
			s.improving = msg.Improving
			s.ranked = msg.Ranked
		}
		s.loaded = true
		return s, func() tea.Msg {
			return screen.TotalsMsg{Lessons: s.lessons, Hours: s.hours}
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}
	if s.lessons == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons yet. Log your first with `drivestar log`.")
	}

	trendStr := theme.Subtitle.Render("holding steady")
	if s.improving {
		trendStr = theme.Improving.Render("improving ↑")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Lessons", fmt.Sprintf("%d", s.lessons)),
		statCard("Hours", fmt.Sprintf("%.1f", s.hours)),
		statCard("Average", fmt.Sprintf("%.1f / 5", s.overall)),
		statCard("Trend", trendStr),
	)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, cards))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render("Needs the most work")))
	b.WriteString("\n\n")

	shown := s.ranked
	if len(shown) > 8 {
		shown = shown[:8]
	}
	for _, sk := range shown {
		name := sk.Name
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if sk.ProblemArea {
			name += " !"
			style = theme.ProblemArea
		}
		line := fmt.Sprintf("%-36s %.1f", name, sk.Average)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func statCard(label, value string) string {
	inner := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value) +
		"\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	return theme.Card.Render(inner)
}
