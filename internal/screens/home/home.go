package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/solomonaboyeji/driving-star-tracker/internal/router"
	"github.com/solomonaboyeji/driving-star-tracker/internal/screen"
	"github.com/solomonaboyeji/driving-star-tracker/internal/screens/dashboard"
	"github.com/solomonaboyeji/driving-star-tracker/internal/screens/progressview"
	"github.com/solomonaboyeji/driving-star-tracker/internal/screens/sessions"
	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
	"github.com/solomonaboyeji/driving-star-tracker/internal/store"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/components"
	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	repo store.Repository
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(repo store.Repository) *HomeScreen {
	items := []components.MenuItem{
		{Label: "DASHBOARD", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: dashboard.New(repo)}
			}
		}},
		{Label: "PROGRESS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progressview.New(repo)}
			}
		}},
		{Label: "SESSIONS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: sessions.New(repo)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		repo: repo,
		menu: components.NewMenu(items),
	}
}

// Init loads lesson totals for the header bar.
func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		all, err := h.repo.List(context.Background())
		if err != nil {
			return screen.TotalsMsg{}
		}
		return screen.TotalsMsg{
			Lessons: len(all),
			Hours:   stats.TotalHours(all),
		}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("DRIVESTAR")
	subtitle := theme.Subtitle.Render("Track every lesson. Pass first time.")

	content := strings.Join([]string{
		title,
		subtitle,
		"",
		h.menu.View(),
	}, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
