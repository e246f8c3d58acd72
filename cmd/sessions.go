package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List logged lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer repo.Close()

		sessions, err := repo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No lessons logged yet. Use `drivestar log` after your next lesson.")
			return nil
		}

		for _, s := range sessions {
			avg, err := stats.SessionAverage(s)
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s  %3d min  avg %.1f", s.ID, s.Date, s.Duration, avg)
			if s.Instructor != "" {
				fmt.Printf("  with %s", s.Instructor)
			}
			fmt.Println()
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one lesson in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer repo.Close()

		sessions, err := repo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		for _, s := range sessions {
			if s.ID == args[0] {
				printSession(s)
				return nil
			}
		}
		return fmt.Errorf("no session with id %q", args[0])
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer repo.Close()

		if err := repo.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

func printSession(s session.Session) {
	fmt.Printf("Lesson %s (%d min)\n", s.Date, s.Duration)
	if s.Instructor != "" {
		fmt.Println("Instructor:", s.Instructor)
	}
	if s.Location != "" {
		fmt.Println("Location:", s.Location)
	}
	if s.Weather != "" {
		fmt.Println("Weather:", s.Weather)
	}
	fmt.Println()

	for _, sk := range s.Skills {
		if !sk.Rated() {
			continue
		}
		line := fmt.Sprintf("  %-34s %s", sk.Name, strings.Repeat("★", sk.Rating))
		if sk.Notes != "" {
			line += "  " + sk.Notes
		}
		fmt.Println(line)
	}

	if len(s.FocusSkills) > 0 {
		fmt.Println("\nNext lesson focus:", strings.Join(s.FocusSkills, ", "))
	}
	if s.GeneralNotes != "" {
		fmt.Println("\nNotes:", s.GeneralNotes)
	}
}
