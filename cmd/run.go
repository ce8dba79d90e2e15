package cmd

import (
	"dropdate/internal/daemon"
	"dropdate/internal/logger"
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rename files once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		result := daemon.NewJob(daemon.NewState()).Run(cmd.Context(), false)

		fmt.Printf("done: %d renamed, %d skipped, %d folders (%s)\n",
			result.Report.Renamed, result.Report.Skipped, result.Report.Folders, result.Outcome)

		return result.Err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
