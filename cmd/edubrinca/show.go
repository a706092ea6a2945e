package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca/pkg/core"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [plans|activities] [id]",
	Short: "Print one lesson plan or activity sheet",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		collection, err := collectionArg(args[0])
		if err != nil {
			fatal("Invalid argument", err)
		}
		id := args[1]

		app := openApp()
		defer app.Close()
		ctx := context.Background()

		switch collection {
		case core.CollectionPlans:
			plan, err := app.Plans.Get(ctx, id)
			if err != nil {
				fatal("Failed to read lesson plan", err)
			}
			if showJSON {
				printJSON(plan)
				return
			}
			writePlan(os.Stdout, plan)
		default:
			sheet, err := app.Activities.Get(ctx, id)
			if err != nil {
				fatal("Failed to read activity sheet", err)
			}
			if showJSON {
				printJSON(sheet)
				return
			}
			writeActivity(os.Stdout, sheet)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
