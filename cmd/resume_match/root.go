package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_match",
	Short: "Score resumes against job descriptions",
	Long: `resume_match scores how well a resume fits a job description: keyword coverage,
requirement tiers, skill levels, structure, readability, tone and semantic similarity.

Semantic features use an embedding provider when one is configured and fall back to
exact matching when it is unavailable.`,
	SilenceUsage: true,
}

var (
	configPath  string
	debugLog    bool
	logJSON     bool
	metricsFile string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file (RESUME_MATCH_* env vars override it)")
	rootCmd.PersistentFlags().BoolVarP(&debugLog, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
}
