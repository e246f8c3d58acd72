package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/solomonaboyeji/driving-star-tracker/internal/ui/theme"
)

// RatingBar displays a star rating average as a horizontal bar.
type RatingBar struct {
	Label     string
	Average   float64 // 0 to 5
	ShowValue bool
	Width     int
}

// NewRatingBar creates a new rating bar.
func NewRatingBar(label string, average float64, showValue bool, width int) RatingBar {
	return RatingBar{
		Label:     label,
		Average:   average,
		ShowValue: showValue,
		Width:     width,
	}
}

// View renders the bar, filled in proportion to Average out of 5.
func (p RatingBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	valueWidth := 0
	if p.ShowValue {
		valueWidth = 6 // "  5.0"
	}

	barWidth := p.Width - labelWidth - valueWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Average / 5)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowValue {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %.1f", p.Average))
	}

	return result
}

// Stars renders a five-star strip for a whole-number rating.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return theme.Star.Render(strings.Repeat("★", rating)) +
		theme.StarEmpty.Render(strings.Repeat("☆", 5-rating))
}
