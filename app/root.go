// Package app implements the main application commands.
package app

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GoMailComposer/GoMailComposer/internal/config"
	"github.com/GoMailComposer/GoMailComposer/internal/logger"
)

var (
	configPath string // directory holding main.toml
	envFile    string // optional dotenv file

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "go-mail-composer",
		Short: "GoMailComposer serves the settings and helpers of the email composer",
		Long: `GoMailComposer persists the email composer settings document,
validates recipient lists and sanitizes composed html, through a JSON API
or directly from the command line.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnv(envFile)
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory holding main.toml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file loaded before the config is read")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadEnv loads a dotenv file, a missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err //nolint:wrapcheck
	}

	log.Debug().Str("file", path).Msg("dotenv file loaded")

	return nil
}

// loadConfig reads the configuration and initializes the logger.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err //nolint:wrapcheck
	}

	return logger.Init(cfg.Log) //nolint:wrapcheck
}
