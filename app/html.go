package app

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/GoMailComposer/GoMailComposer/internal/htmlsanitizer"
)

func init() { //nolint: gochecknoinits
	htmlSanitizeCmd.Flags().BoolVar(&htmlStrict, "strict", false, "keep only prose emphasis and lists")
	htmlSanitizeCmd.Flags().StringVarP(&htmlFile, "file", "f", "-", "html file to sanitize, - reads stdin")

	htmlCmd.AddCommand(htmlSanitizeCmd)
	rootCmd.AddCommand(htmlCmd)
}

var (
	htmlStrict bool
	htmlFile   string

	htmlCmd = &cobra.Command{
		Use:   "html",
		Short: "HTML helpers",
	}

	htmlSanitizeCmd = &cobra.Command{
		Use:   "sanitize",
		Short: "Sanitize html from a file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				raw []byte
				err error
			)

			if htmlFile == "-" || htmlFile == "" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(htmlFile)
			}

			if err != nil {
				return errors.Wrap(err, "failed to read html")
			}

			out := htmlsanitizer.Sanitize(string(raw))
			if htmlStrict {
				out = htmlsanitizer.SanitizeStrict(string(raw))
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err //nolint:wrapcheck
		},
	}
)
