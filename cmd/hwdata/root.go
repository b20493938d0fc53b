package main

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hwdata",
	Short: "Correlate a HighwayData-style corpus into a connected highway network",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (defaults to ./config.yaml, ./configs/config.yaml, or /etc/hwdata/config.yaml)")
}
