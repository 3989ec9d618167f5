package main

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-fractal/export"
	"github.com/RyanBlaney/sonido-fractal/logging"
)

var compareFlags struct {
	output string
}

var compareCmd = &cobra.Command{
	Use:   "compare <result-csv-1> <result-csv-2>",
	Short: "Compare two analysis result files",
	Long: `Load two result CSVs, trim them to their common length, and report
per-measure summary statistics plus the percentage of time steps where both
runs agree on the classification.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareFlags.output, "output", "detailed_comparison.csv", "detailed comparison CSV path")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger := logging.WithFields(logging.Fields{
		"component": "compare_cmd",
	})

	comparison, err := export.CompareResultFiles(args[0], args[1])
	if err != nil {
		logger.Error(err, "Comparison failed")
		return err
	}

	logger.Info("Comparison completed", logging.Fields{
		"file_1":               comparison.File1,
		"file_2":               comparison.File2,
		"classification_match": comparison.ClassificationMatch,
	})

	for _, s := range comparison.Stats {
		logging.Info("Column statistics", logging.Fields{
			"column": s.Column,
			"file":   s.File,
			"mean":   s.Mean,
			"median": s.Median,
			"std":    s.Std,
			"min":    s.Min,
			"max":    s.Max,
		})
	}

	if err := comparison.WriteComparisonCSV(compareFlags.output); err != nil {
		logger.Error(err, "Failed to save comparison")
		return err
	}
	logger.Info("Detailed comparison saved", logging.Fields{
		"csv": compareFlags.output,
	})

	return nil
}
