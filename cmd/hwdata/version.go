package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags; "dev" otherwise.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hwdata build version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("hwdata " + version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
