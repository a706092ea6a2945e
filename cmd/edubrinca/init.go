package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca"
	"github.com/aretw0/edubrinca/pkg/core"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or upgrade the store",
	Long: `Create the store (directories or database tables) and upgrade its schema.
Every other command does this lazily; running init twice is harmless.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts, hasPath, err := options()
		if err != nil {
			fatal("Failed to load configuration", err)
		}

		repo, err := edubrinca.Init(storeURI(hasPath), opts...)
		if err != nil {
			fatal("Failed to initialize store", err)
		}
		defer repo.Close()

		fmt.Printf("Store ready (schema version %d)\n", core.SchemaVersion)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
