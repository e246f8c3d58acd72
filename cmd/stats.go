package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics",
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

		overall, err := stats.OverallAverage(sessions)
		if err != nil {
			return err
		}
		trend, err := stats.TrendSignal(sessions)
		if err != nil {
			return err
		}
		series, err := stats.Series(sessions, stats.DefaultSeriesLimit)
		if err != nil {
			return err
		}
		ranked, err := stats.Ranked(sessions)
		if err != nil {
			return err
		}

		fmt.Printf("Sessions: %d   Hours: %.1f   Overall average: %.1f\n",
			len(sessions), stats.TotalHours(sessions), overall)
		if trend.Improving {
			fmt.Println("Trend: improving")
		} else {
			fmt.Println("Trend: holding steady")
		}

		if len(series) > 0 {
			fmt.Println("\nRecent sessions:")
			for _, p := range series {
				fmt.Printf("  %-12s %s  %.1f\n", p.Label, p.Date, p.Average)
			}
		}

		fmt.Println("\nSkills, weakest first:")
		for _, sk := range ranked {
			marker := " "
			if sk.ProblemArea {
				marker = "!"
			}
			fmt.Printf("  %s %-34s %.1f\n", marker, sk.Name, sk.Average)
		}
		return nil
	},
}
