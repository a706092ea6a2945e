package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca/pkg/backup"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of the whole library",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		name := exportOut
		if name == "" {
			name = backup.ExportFileName(time.Now())
		}

		ctx := context.Background()
		if name == "-" {
			if _, err := app.Exporter.Export(ctx, os.Stdout); err != nil {
				fatal("Failed to export", err)
			}
			return
		}

		doc, err := app.Exporter.ExportFile(ctx, name)
		if err != nil {
			fatal("Failed to export", err)
		}
		fmt.Printf("Exported %d plans and %d activities to %s\n", len(doc.Plans), len(doc.Activities), name)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file, or - for standard output (default backup-professora-<date>.json)")
}
