package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/travelmapping/hwdata/internal/infrastructure/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and validate the corpus without persisting or exporting anything",
	Long: "validate runs the same parse, correlate, and validate passes as run, " +
		"then exits non-zero if any datacheck entry was not reconciled as a false positive.",
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Println("Loading configuration...")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	result, err := runPipeline(cfg)
	if err != nil {
		return err
	}

	unreconciled := 0
	for _, e := range result.Datachecks {
		if !e.FalsePositive {
			unreconciled++
		}
	}

	fmt.Printf("%d systems, %d routes, %d datacheck entries (%d unreconciled)\n",
		len(result.Systems), len(result.Routes), len(result.Datachecks), unreconciled)

	if unreconciled > 0 {
		for _, e := range result.Datachecks {
			if !e.FalsePositive {
				fmt.Println("  " + e.String())
			}
		}
		return fmt.Errorf("%d unreconciled datacheck entries", unreconciled)
	}
	return nil
}
