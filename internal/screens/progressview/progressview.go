package progressview

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/solomonaboyeji/driving-star-tracker/internal/screen"
	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
	"github.com/solomonaboyeji/driving-star-tracker/internal/store"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/components"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/layout"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/theme"
)

type loadedMsg struct {
	Series []stats.Point
	Ranked []stats.SkillStanding
	Err    error
}

// ProgressScreen charts recent session averages and ranks every skill.
type ProgressScreen struct {
	repo   store.Repository
	series []stats.Point
	ranked []stats.SkillStanding
	filter components.FilterInput
	loaded bool
	errMsg string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(repo store.Repository) *ProgressScreen {
	return &ProgressScreen{
		repo:   repo,
		filter: components.NewFilterInput("type to filter skills", 40),
	}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.repo.List(context.Background())
		if err != nil {
			return loadedMsg{Err: err}
		}
		series, err := stats.Series(sessions, stats.DefaultSeriesLimit)
		if err != nil {
			return loadedMsg{Err: err}
		}
		ranked, err := stats.Ranked(sessions)
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{Series: series, Ranked: ranked}
	}
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	if s.filter.Active() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.series = msg.Series
			s.ranked = msg.Ranked
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if s.filter.Active() {
			if msg.String() == "enter" {
				s.filter.Blur()
				return s, nil
			}
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			return s, cmd
		}
		switch msg.String() {
		case "/":
			return s, s.filter.Activate()
		case "backspace":
			s.filter.Deactivate()
			return s, nil
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
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

	var b strings.Builder
	b.WriteString("\n")

	barWidth := width / 2
	if barWidth > 60 {
		barWidth = 60
	}

	if len(s.series) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No lessons yet.")))
		b.WriteString("\n")
	} else {
		for _, p := range s.series {
			bar := components.NewRatingBar(
				fmt.Sprintf("%-11s %s", p.Label, p.Date), p.Average, true, barWidth)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render("All skills, weakest first")))
	b.WriteString("\n")
	if s.filter.Active() || s.filter.Value() != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.filter.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	query := strings.ToLower(s.filter.Value())
	shown := 0
	for _, sk := range s.ranked {
		if query != "" && !strings.Contains(strings.ToLower(sk.Name), query) {
			continue
		}
		name := sk.Name
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if sk.ProblemArea {
			name += " !"
			style = theme.ProblemArea
		}
		line := fmt.Sprintf("%-36s %.1f", name, sk.Average)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
		shown++
	}
	if shown == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No skills match the filter.")))
		b.WriteString("\n")
	}

	return b.String()
}
