package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-fractal/analysis"
	"github.com/RyanBlaney/sonido-fractal/analysis/config"
	"github.com/RyanBlaney/sonido-fractal/export"
	"github.com/RyanBlaney/sonido-fractal/logging"
	"github.com/RyanBlaney/sonido-fractal/transcode"
)

var analyzeFlags struct {
	duration    float64
	kMax        int
	windowSizes []float64
	dfaMinScale int
	dfaMaxScale int
	workers     int
	noPlot      bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <audio-file>",
	Short: "Run the fractal analysis pipeline over an audio file",
	Long: `Decode the audio file, scan it with multi-scale fractal windows,
derive adaptive thresholds, classify each time step, and write the result
CSV and plot next to the working directory.

A failure at any stage aborts the run with a nonzero exit and no partial
output files.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeFlags.duration, "duration", 60.0, "analysis duration cap in seconds")
	analyzeCmd.Flags().IntVar(&analyzeFlags.kMax, "k-max", 10, "maximum Higuchi scale")
	analyzeCmd.Flags().Float64SliceVar(&analyzeFlags.windowSizes, "window-sizes", []float64{1, 3}, "analysis window sizes in seconds")
	analyzeCmd.Flags().IntVar(&analyzeFlags.dfaMinScale, "dfa-min-scale", 5, "smallest DFA segment length in samples")
	analyzeCmd.Flags().IntVar(&analyzeFlags.dfaMaxScale, "dfa-max-scale", 100, "largest DFA segment length in samples")
	analyzeCmd.Flags().IntVar(&analyzeFlags.workers, "workers", 0, "concurrent window scans (0 = one per CPU)")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.noPlot, "no-plot", false, "skip PNG rendering")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	audioFile := args[0]
	baseName := strings.TrimSuffix(filepath.Base(audioFile), filepath.Ext(audioFile))

	logger := logging.WithFields(logging.Fields{
		"component":  "analyze_cmd",
		"audio_file": audioFile,
	})
	logger.Info("Starting analysis")

	cfg := config.Default()
	cfg.MaxDuration = analyzeFlags.duration
	cfg.KMax = analyzeFlags.kMax
	cfg.WindowSizes = analyzeFlags.windowSizes
	cfg.DFAMinScale = analyzeFlags.dfaMinScale
	cfg.DFAMaxScale = analyzeFlags.dfaMaxScale
	cfg.Workers = analyzeFlags.workers

	analyzer, err := analysis.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	decoder := transcode.NewDecoder(&transcode.DecoderConfig{
		MaxDuration: cfg.MaxDuration,
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		Timeout:     transcode.DefaultDecoderConfig().Timeout,
	})

	audioData, err := decoder.DecodeFile(audioFile)
	if err != nil {
		logger.Error(err, "Failed to decode audio file")
		return err
	}

	result, err := analyzer.Analyze(&analysis.Signal{
		Samples:    audioData.PCM,
		SampleRate: audioData.SampleRate,
	})
	if err != nil {
		logger.Error(err, "Analysis failed")
		return err
	}

	csvFile := fmt.Sprintf("fractal_analysis_results_%s.csv", baseName)
	if err := export.WriteResultCSV(result, csvFile); err != nil {
		logger.Error(err, "Failed to save results")
		return err
	}
	logger.Info("Results saved", logging.Fields{"csv": csvFile})

	if !analyzeFlags.noPlot {
		plotFile := fmt.Sprintf("fractal_analysis_result_%s.png", baseName)
		if err := export.RenderResultPNG(result, plotFile); err != nil {
			logger.Error(err, "Failed to render plot")
			return err
		}
		logger.Info("Plot saved", logging.Fields{"plot": plotFile})
	}

	reportSegments(result)

	logger.Info("Overall classification", logging.Fields{
		"verdict":     result.Verdict,
		"confidence":  fmt.Sprintf("%.2f%%", 100*result.Confidence),
		"ai_fraction": result.AIFraction,
	})

	return nil
}

// reportSegments logs the retroactive three-segment summary
func reportSegments(result *analysis.Result) {
	labels := result.WindowLabels()
	for i, segment := range result.Segments {
		fields := logging.Fields{
			"segment":     i + 1,
			"range":       fmt.Sprintf("%.2fs - %.2fs", segment.Start, segment.End),
			"ai_fraction": segment.AIFraction,
		}
		if segment.SampleCount == 0 {
			fields["missing"] = true
		}
		for s, label := range labels {
			fields["hfd_"+label] = segment.MeanHFD[s]
			fields["dfa_"+label] = segment.MeanDFA[s]
		}
		logging.Info("Retroactive segment", fields)
	}
}
