// Package cli provides the command-line interface for Waypoint.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waypointhq/waypoint/internal/client"
)

var (
	// Version is set at build time.
	Version = "1.0.0"

	// Global flags
	serverURL string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "waypoint",
	Short: "Market research for product ideas",
	Long: `Waypoint turns a one-line product idea into a market analysis:
competitors, user pain points, search demand, and an AI-synthesized
strategy dashboard with a category diagnosis verdict.

Submit an idea with 'waypoint analyze' and watch the pipeline run, or
fetch a finished dashboard with 'waypoint results'.`,
	Version: Version,
}

// apiClient builds a client for the configured server.
func apiClient() *client.Client {
	return client.New(serverURL)
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Waypoint server URL (default $WAYPOINT_SERVER_URL or http://localhost:8000)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(resultsCmd)
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
