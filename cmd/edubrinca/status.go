package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca"
	"github.com/aretw0/edubrinca/pkg/core"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the store state as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()
		ctx := context.Background()

		// Listing opens the store so the state below is populated.
		plans, err := app.Plans.List(ctx)
		if err != nil {
			fatal("Failed to read lesson plans", err)
		}
		activities, err := app.Activities.List(ctx)
		if err != nil {
			fatal("Failed to read activity sheets", err)
		}

		printJSON(map[string]any{
			"version":        strings.TrimSpace(edubrinca.Version),
			"schema_version": core.SchemaVersion,
			"service":        app.Service.State(),
			"plans":          len(plans),
			"activities":     len(activities),
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
