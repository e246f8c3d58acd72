package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solomonaboyeji/driving-star-tracker/internal/catalog"
	"github.com/solomonaboyeji/driving-star-tracker/internal/stats"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the DVSA skill catalog with per-skill averages",
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

		for _, sec := range catalog.Sections() {
			fmt.Println(sec.Name)
			for _, sk := range sec.Skills {
				marker := " "
				if catalog.IsProblemArea(sk) {
					marker = "!"
				}
				avg, err := stats.SkillAverage(sk, sessions)
				if err != nil {
					return err
				}
				if avg > 0 {
					fmt.Printf("  %s %-34s %.1f\n", marker, sk, avg)
				} else {
					fmt.Printf("  %s %-34s -\n", marker, sk)
				}
			}
		}
		fmt.Println("\n! = common problem area")
		return nil
	},
}
