package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/solomonaboyeji/driving-star-tracker/internal/session"
	"github.com/solomonaboyeji/driving-star-tracker/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "drivestar",
	Short: "Personal driving lesson progress tracker",
	Long:  "Drivestar — terminal app for logging driving lessons and tracking skill ratings against the DVSA test criteria.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DRIVESTAR_DB env var)")
	rootCmd.PersistentFlags().String("remote", "", "Base URL of a drivestar server (overrides DRIVESTAR_REMOTE env var)")

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// openRepository picks the backing store: --remote or DRIVESTAR_REMOTE
// selects the HTTP client, otherwise --db (falling back to the default
// XDG path) opens the local SQLite database.
func openRepository(cmd *cobra.Command) (store.Repository, error) {
	if u, _ := cmd.Flags().GetString("remote"); u != "" {
		return store.NewRemote(u), nil
	}
	if u := os.Getenv("DRIVESTAR_REMOTE"); u != "" {
		return store.NewRemote(u), nil
	}

	p, _ := cmd.Flags().GetString("db")
	if p != "" {
		if err := store.EnsureDir(p); err != nil {
			return nil, err
		}
	} else {
		var err error
		if p, err = store.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	return store.OpenSQLite(p)
}

// focusMinimum returns the focus-skill minimum from DRIVESTAR_FOCUS_MIN,
// falling back to the built-in default.
func focusMinimum() int {
	if v := os.Getenv("DRIVESTAR_FOCUS_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return session.DefaultMinFocusSkills
}
