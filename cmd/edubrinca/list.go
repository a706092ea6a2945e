package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca/pkg/core"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [plans|activities]",
	Short: "List saved lesson plans and activity sheets, newest first",
	Long: `List the library. Entities that cannot be read are logged and the
listing shows nothing rather than failing.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		only := ""
		if len(args) == 1 {
			c, err := collectionArg(args[0])
			if err != nil {
				fatal("Invalid argument", err)
			}
			only = c
		}

		app := openApp()
		defer app.Close()
		ctx := context.Background()

		var plans []*core.LessonPlan
		var activities []*core.ActivitySheet
		if only == "" || only == core.CollectionPlans {
			plans = app.Plans.ListAll(ctx)
		}
		if only == "" || only == core.CollectionActivities {
			activities = app.Activities.ListAll(ctx)
		}

		if listJSON {
			printJSON(map[string]any{"plans": plans, "activities": activities})
			return
		}
		if err := writeTable(os.Stdout, plans, activities); err != nil {
			fatal("Failed to write listing", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
