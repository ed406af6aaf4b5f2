package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-cms/internal/content"
	"github.com/Zachkp/portfolio-cms/internal/loader"
	"github.com/Zachkp/portfolio-cms/internal/server"
	"github.com/Zachkp/portfolio-cms/internal/store"
)

var saveToken string

var saveCmd = &cobra.Command{
	Use:   "save <content.json>",
	Short: "Validate a content document and POST it to the content API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := store.NewFileStore(args[0]).Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		if err := content.Validate(doc); err != nil {
			return err
		}

		token, err := adminToken()
		if err != nil {
			return err
		}
		client := &loader.Client{URL: appConfig.APIURL, Token: token}
		result := client.Save(cmd.Context(), doc)
		if !result.Success {
			return fmt.Errorf("save failed: %s", result.Message)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

// adminToken prefers an explicit token and otherwise signs one with the
// shared admin secret.
func adminToken() (string, error) {
	if saveToken != "" {
		return saveToken, nil
	}
	if appConfig.AdminToken != "" {
		return appConfig.AdminToken, nil
	}
	if appConfig.AdminSecret == "" {
		return "", fmt.Errorf("no admin token: set --token, admin_token or admin_secret")
	}
	return server.IssueToken(appConfig.AdminSecret, appConfig.AdminUsername, 10*time.Minute)
}

func init() {
	saveCmd.Flags().StringVar(&saveToken, "token", "", "admin bearer token")
	rootCmd.AddCommand(saveCmd)
}
