package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca/pkg/adapters/lifecycle"
	"github.com/aretw0/edubrinca/pkg/core"
)

var (
	watchPattern string
	watchTypes   []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print store changes as they happen (fs store only)",
	Long: `Watch follows the store directory and prints one line per created,
modified or deleted entity, e.g. "CREATE plans/abc123". The pattern
filters "<collection>/<id>" keys with doublestar syntax.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := app.Service.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to watch store", err)
		}

		var types []core.EventType
		for _, t := range watchTypes {
			types = append(types, core.EventType(strings.ToUpper(strings.TrimSpace(t))))
		}

		src := lifecycle.NewSource(events, types...)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		for e := range src.Events() {
			fmt.Println(e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", "**", "Doublestar pattern over <collection>/<id>")
	watchCmd.Flags().StringSliceVar(&watchTypes, "types", nil, "Only these change types: create, modify, delete")
}
