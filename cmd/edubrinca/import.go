package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca/pkg/backup"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a JSON backup",
	Long: `Import recovers lesson plans and activity sheets from a JSON file:
a native EduBrinca backup, a content repository export, or any document
that nests recognizable entities. Use "-" to read standard input.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()
		ctx := context.Background()

		var report backup.Report
		var err error
		if args[0] == "-" {
			report, err = app.Importer.Import(ctx, os.Stdin)
		} else {
			report, err = app.Importer.ImportFile(ctx, args[0])
		}
		if err != nil {
			if report.Total() > 0 {
				fmt.Fprintf(os.Stderr, "%d entities were saved before the failure\n", report.Total())
			}
			fatal("Failed to import", err)
		}

		fmt.Printf("Imported %d plans and %d activities (%s)\n", report.Plans, report.Activities, report.Format)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
