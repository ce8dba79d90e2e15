package cmd

import (
	"dropdate/internal/model"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View the last run of a running scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := statusURL(cfg.HealthAddr, "/status")
		if err != nil {
			return err
		}

		resp, err := http.Get(url)
		if err != nil {
			return fmt.Errorf("scheduler not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Runs     int                `json:"runs"`
			Schedule string             `json:"schedule"`
			NextRun  time.Time          `json:"next_run"`
			LastRun  *model.RunSnapshot `json:"last_run"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		fmt.Printf("schedule: %s (next %s)\n", result.Schedule, result.NextRun.Format("2006-01-02 15:04:05"))
		fmt.Printf("runs:     %d\n", result.Runs)

		if result.LastRun == nil {
			fmt.Println("no runs yet")
			return nil
		}

		last := result.LastRun
		path := make([]string, len(last.Path))
		for i, s := range last.Path {
			path[i] = string(s)
		}

		fmt.Printf("last run: %s  %-16s renamed=%d skipped=%d\n",
			last.StartedAt.Format("2006-01-02 15:04:05"), last.Outcome, last.Report.Renamed, last.Report.Skipped)
		fmt.Printf("          %s\n", strings.Join(path, " -> "))
		if last.Error != "" {
			fmt.Printf("          error: %s\n", last.Error)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
