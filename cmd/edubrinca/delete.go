package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [plans|activities] [id]",
	Short: "Delete a lesson plan or activity sheet",
	Long:  `Delete removes an entity from the store. Deleting a missing id is not an error.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		collection, err := collectionArg(args[0])
		if err != nil {
			fatal("Invalid argument", err)
		}
		id := args[1]

		app := openApp()
		defer app.Close()

		if err := app.Service.Delete(context.Background(), collection, id); err != nil {
			fatal("Failed to delete", err)
		}

		fmt.Printf("Deleted: %s/%s\n", collection, id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
