package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a completed driving lesson",
	Example: `  drivestar log --duration 60 \
    --skill "Roundabouts=3:still drifting wide" \
    --skill "Junctions - observing=4" \
    --skill "Moving off - safely=5" \
    --focus "Roundabouts" --focus "Junctions - observing" --focus "Moving off - safely"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		date, _ := flags.GetString("date")
		duration, _ := flags.GetString("duration")
		instructor, _ := flags.GetString("instructor")
		location, _ := flags.GetString("location")
		weather, _ := flags.GetString("weather")
		notes, _ := flags.GetString("notes")
		skillSpecs, _ := flags.GetStringArray("skill")
		focus, _ := flags.GetStringArray("focus")

		skills := make([]session.SkillRating, 0, len(skillSpecs))
		for _, spec := range skillSpecs {
			sr, err := parseSkillSpec(spec)
			if err != nil {
				return err
			}
			skills = append(skills, sr)
		}

		sess, err := session.NewWithMinimum(session.Input{
			Date:         date,
			Duration:     duration,
			Instructor:   instructor,
			Location:     location,
			Weather:      weather,
			GeneralNotes: notes,
			Skills:       skills,
			FocusSkills:  focus,
		}, focusMinimum())
		if err != nil {
			return err
		}

		repo, err := openRepository(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer repo.Close()

		if err := repo.Create(cmd.Context(), sess); err != nil {
			return fmt.Errorf("save session: %w", err)
		}

		avg, err := stats.SessionAverage(sess)
		if err != nil {
			return err
		}
		fmt.Printf("Logged %s (%d min), session average %.1f\n", sess.Date, sess.Duration, avg)
		return nil
	},
}

func init() {
	flags := logCmd.Flags()
	flags.String("date", time.Now().Format(session.DateLayout), "Lesson date (YYYY-MM-DD)")
	flags.String("duration", "", "Lesson duration in minutes")
	flags.String("instructor", "", "Instructor name")
	flags.String("location", "", "Lesson location")
	flags.String("weather", "", "Weather conditions")
	flags.String("notes", "", "General notes about the lesson")
	flags.StringArray("skill", nil, `Skill rating as "name=rating" or "name=rating:notes" (repeatable)`)
	flags.StringArray("focus", nil, "Skill to focus on next lesson (repeatable)")

	_ = logCmd.MarkFlagRequired("duration")
}

// parseSkillSpec parses "name=rating" or "name=rating:notes".
func parseSkillSpec(spec string) (session.SkillRating, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return session.SkillRating{}, fmt.Errorf("invalid --skill %q: expected name=rating", spec)
	}

	ratingStr, notes, _ := strings.Cut(rest, ":")
	rating, err := strconv.Atoi(strings.TrimSpace(ratingStr))
	if err != nil {
		return session.SkillRating{}, fmt.Errorf("invalid --skill %q: rating must be a number", spec)
	}

	return session.SkillRating{
		Name:   strings.TrimSpace(name),
		Rating: rating,
		Notes:  strings.TrimSpace(notes),
	}, nil
}
