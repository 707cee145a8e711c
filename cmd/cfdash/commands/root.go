package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cfdash",
	Short: "Codeforces Dashboard - competitive programming analytics",
	Long: `Codeforces Dashboard CLI

Fetches a user's public Codeforces data and derives solve streaks, weak
topic tags, and practice-problem recommendations.

Usage:
  go run ./cmd/cfdash [command]

Examples:
  go run ./cmd/cfdash serve
  go run ./cmd/cfdash report tourist
  go run ./cmd/cfdash version`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
