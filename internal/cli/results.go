package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/waypointhq/waypoint/internal/models"
)

var resultsCmd = &cobra.Command{
	Use:   "results <job-id>",
	Short: "Fetch the analysis dashboard for a job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := apiClient()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		job, err := c.GetJob(ctx, args[0])
		if err != nil {
			exitWithError("%v", err)
		}

		switch job.Status {
		case models.StatusProcessing:
			fmt.Printf("Job %s is still processing (%d%%, %s).\n",
				job.JobID, job.Progress, stageLabel(job.Progress))
		case models.StatusFailed:
			msg := "unknown error"
			if job.Error != nil {
				msg = *job.Error
			}
			exitWithError("analysis failed: %s", msg)
		default:
			fmt.Print(renderDashboard(job))
		}
	},
}
