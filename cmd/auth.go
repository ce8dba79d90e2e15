package cmd

import (
	"dropdate/internal/auth"
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Obtain a Dropbox refresh token",
	Long: "Runs the Dropbox OAuth2 flow with DROPBOX_APP_KEY and DROPBOX_APP_SECRET " +
		"and prints a refresh token to set as DROPBOX_REFRESH_TOKEN.",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := auth.Authorize(cmd.Context(), cfg.Dropbox.AppKey, cfg.Dropbox.AppSecret, cfg.TokenURL)
		if err != nil {
			return err
		}

		fmt.Println("Authenticated with Dropbox")
		fmt.Println()
		fmt.Printf("DROPBOX_ACCESS_TOKEN=%s\n", token.AccessToken)
		fmt.Printf("DROPBOX_REFRESH_TOKEN=%s\n", token.RefreshToken)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
