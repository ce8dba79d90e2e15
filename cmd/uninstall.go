package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the scheduler from autostart",
	RunE: func(cmd *cobra.Command, args []string) error {
		as := newAutoStarter()

		installed, err := as.IsInstalled()
		if err != nil {
			return fmt.Errorf("failed to check autostart: %w", err)
		}

		if !installed {
			fmt.Fprintln(cmd.OutOrStdout(), "dropdate scheduler is not registered")
			return nil
		}

		if err := as.Uninstall(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "dropdate scheduler autostart removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
