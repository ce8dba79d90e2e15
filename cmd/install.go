package cmd

import (
	"dropdate/internal/autostart"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	installForce   bool
	newAutoStarter = autostart.New
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the scheduler to start on login",
	RunE: func(cmd *cobra.Command, args []string) error {
		as := newAutoStarter()

		installed, err := as.IsInstalled()
		if err != nil {
			return fmt.Errorf("failed to check autostart: %w", err)
		}

		if installed && !installForce {
			fmt.Fprintln(cmd.OutOrStdout(), "dropdate scheduler already registered, use --force to re-register")
			return nil
		}

		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}

		if err := as.Install(execPath); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "dropdate scheduler registered for autostart")
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVar(&installForce, "force", false, "re-register even if already installed")
	rootCmd.AddCommand(installCmd)
}
