package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/edubrinca"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of edubrinca",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("edubrinca version %s\n", strings.TrimSpace(edubrinca.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
