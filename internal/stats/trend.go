package stats

import "github.com/solomonaboyeji/driving-star-tracker/internal/session"

// trendWindow is how many sessions each side of the trend comparison
// looks at.
const trendWindow = 3

// Trend is the binary improving-vs-steady signal.
type Trend struct {
	Improving bool
}

// TrendSignal compares the mean rating across the 3 most recent
// sessions against the mean across the 3 before them. Only rated
// entries contribute; sessions rating more skills weigh more. With
// fewer than 2 sessions, an empty older window, or a window with no
// rated entries, the signal is not-improving. Ties are not-improving.
func TrendSignal(sessions []session.Session) (Trend, error) {
	if err := checkAll(sessions); err != nil {
		return Trend{}, err
	}
	if len(sessions) < 2 {
		return Trend{}, nil
	}

	sorted := byDateDesc(sessions)
	recent := sorted[:min(trendWindow, len(sorted))]
	older := sorted[min(trendWindow, len(sorted)):min(2*trendWindow, len(sorted))]
	if len(older) == 0 {
		return Trend{}, nil
	}

	recentMean, recentRated := windowMean(recent)
	olderMean, olderRated := windowMean(older)
	if !recentRated || !olderRated {
		return Trend{}, nil
	}

	return Trend{Improving: recentMean > olderMean}, nil
}

// windowMean flattens the rated entries across the window and reports
// their mean, plus whether any rated entry existed at all.
func windowMean(window []session.Session) (float64, bool) {
	sum, count := 0, 0
	for _, s := range window {
		for _, r := range s.Skills {
			if r.Rated() {
				sum += r.Rating
				count++
			}
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}
