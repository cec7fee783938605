// Package main provides the fyp_navigator CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	rootConfigPath  string
	rootDataDir     string
	rootDatabaseURL string
	rootLogLevel    string
	rootLogFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "fyp_navigator",
	Short: "Final Year Project topic recommender",
	Long: "FYP Navigator recommends Final Year Project topics to students by combining rule-based " +
		"eligibility filtering with a content-similarity fallback, and records topic selections.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConfigPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "Directory for students, history and selections (overrides FYP_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&rootDatabaseURL, "db-url", "", "PostgreSQL connection URL; file storage when empty (overrides FYP_DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "Log format: json or console")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
