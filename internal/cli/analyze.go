package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/waypointhq/waypoint/internal/models"
)

var (
	analyzeEmail string
	analyzeTier  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <product idea>",
	Short: "Submit a product idea for market analysis",
	Long: `Submit a product idea and watch the analysis pipeline run.

The idea should be a short plain-English description, for example:
  waypoint analyze "a focus app for people with ADHD" --email you@example.com`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		idea := strings.Join(args, " ")
		c := apiClient()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		accepted, err := c.Analyze(ctx, models.AnalyzeRequest{
			ProductIdea: idea,
			Email:       analyzeEmail,
			Tier:        models.Tier(analyzeTier),
		})
		if err != nil {
			exitWithError("%v", err)
		}

		fmt.Printf("Analysis started: %s\n\n", accepted.JobID)

		job, err := runJobProgress(c, accepted.JobID)
		if err != nil {
			exitWithError("%v", err)
		}
		if job == nil {
			// Detached; the job keeps running server-side.
			return
		}

		fmt.Print(renderDashboard(job))
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeEmail, "email", "e", "", "contact email for the analysis (required)")
	analyzeCmd.Flags().StringVarP(&analyzeTier, "tier", "t", "prelaunch", "stage of the product: prelaunch or postlaunch")
	_ = analyzeCmd.MarkFlagRequired("email")
}
