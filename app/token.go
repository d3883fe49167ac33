package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoMailComposer/GoMailComposer/internal/apitoken"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate an API token and the hash to put into Webserver.APITokenHash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		token, hash, err := apitoken.New()
		if err != nil {
			return err //nolint:wrapcheck
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "token: %s\nhash:  %s\n", token, hash)

		return err //nolint:wrapcheck
	},
}
