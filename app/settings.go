package app

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/GoMailComposer/GoMailComposer/internal/settings"
	"github.com/GoMailComposer/GoMailComposer/internal/storage"
)

func init() { //nolint: gochecknoinits
	settingsSaveCmd.Flags().StringVarP(&settingsFile, "file", "f", "-", "settings document to save, - reads stdin")

	settingsCmd.AddCommand(settingsGetCmd, settingsSaveCmd)
	rootCmd.AddCommand(settingsCmd)
}

var (
	settingsFile string

	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Read or replace the stored settings document",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
				return err
			}

			return loadConfig()
		},
	}

	settingsGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Print the current settings document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(store *settings.Store) error {
				return printJSON(cmd.OutOrStdout(), store.Get())
			})
		},
	}

	settingsSaveCmd = &cobra.Command{
		Use:   "save",
		Short: "Replace the settings document with a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			candidate, err := readSettings(cmd.InOrStdin(), settingsFile)
			if err != nil {
				return err
			}

			return withStore(func(store *settings.Store) error {
				if candidate.CreatedAt.IsZero() {
					candidate.CreatedAt = store.Get().CreatedAt
				}

				saved, saveErr := store.Save(candidate)
				if saveErr != nil {
					return saveErr //nolint:wrapcheck
				}

				return printJSON(cmd.OutOrStdout(), saved)
			})
		},
	}
)

// withStore opens the configured storage for the duration of fn.
func withStore(fn func(store *settings.Store) error) error {
	medium, err := storage.New(&cfg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() { _ = medium.Close() }()

	return fn(settings.New(medium))
}

func readSettings(stdin io.Reader, file string) (settings.Settings, error) {
	var (
		candidate settings.Settings
		r         = stdin
	)

	if file != "-" && file != "" {
		f, err := os.Open(file) //nolint:gosec
		if err != nil {
			return candidate, errors.Wrap(err, "failed to open settings file")
		}

		defer f.Close()

		r = f
	}

	if err := json.NewDecoder(r).Decode(&candidate); err != nil {
		return candidate, errors.Wrap(err, "failed to decode settings document")
	}

	if candidate.EmailProvider == "" {
		candidate.EmailProvider = settings.ProviderWebhook
	}

	return candidate, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v) //nolint:wrapcheck
}
