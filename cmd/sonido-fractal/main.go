package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-fractal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "sonido-fractal",
	Short:         "Fractal voice analysis - estimate whether a recorded voice is synthetic",
	SilenceUsage:  true,  // Don't print usage on error
	SilenceErrors: false, // Do print errors
	Long: `sonido-fractal analyzes a recorded voice with multi-scale fractal
descriptors (Higuchi fractal dimension and detrended fluctuation analysis)
and classifies each time step as AI-generated or human against adaptive,
distribution-derived thresholds.

No trained model is involved: the verdict comes from a reproducible numeric
procedure over the signal itself.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logging.SetLevel(logging.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
