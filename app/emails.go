package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoMailComposer/GoMailComposer/internal/emaillist"
)

func init() { //nolint: gochecknoinits
	emailsCmd.AddCommand(emailsParseCmd, emailsValidateCmd)
	rootCmd.AddCommand(emailsCmd)
}

// errInvalidEmails makes the validate command exit non zero.
var errInvalidEmails = fmt.Errorf("email list contains invalid addresses") //nolint:err113

var (
	emailsCmd = &cobra.Command{
		Use:   "emails",
		Short: "Parse and validate comma or semicolon separated email lists",
	}

	emailsParseCmd = &cobra.Command{
		Use:   "parse <list>...",
		Short: "Print one address per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, email := range emaillist.Parse(strings.Join(args, ",")) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), email); err != nil {
					return err //nolint:wrapcheck
				}
			}

			return nil
		},
	}

	emailsValidateCmd = &cobra.Command{
		Use:   "validate <list>...",
		Short: "Print the validation result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := emaillist.Validate(strings.Join(args, ","))

			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if !result.IsValid {
				return errInvalidEmails
			}

			return nil
		},
	}
)
