package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solomonaboyeji/driving-star-tracker/internal/app"
)

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	repo, err := openRepository(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repo.Close()

	return app.Run(app.Options{
		Repo:     repo,
		FocusMin: focusMinimum(),
		Version:  version,
	})
}
