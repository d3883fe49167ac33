// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides of single keys, e.g. GO_MAIL_COMPOSER_WEBSERVER_PORT.
	EnvPrefix = "GO_MAIL_COMPOSER"

	// EnvConfigJSON holds a JSON document merged over the file configuration.
	EnvConfigJSON = EnvPrefix + "_CONFIG_JSON"

	// DefaultTable is the table used by the mysql and postgres storage drivers.
	DefaultTable = "composer_storage"

	defaultShutDownTime = 5
	defaultBodyLimit    = 1024 * 1024
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, "main.toml"))
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)
	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read JSON config override")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	t := toml.NewEncoder(&buffer)
	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without and fills defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.BodyLimit == 0 {
		c.Webserver.BodyLimit = defaultBodyLimit
	}

	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = DriverMemory
	case DriverMemory, DriverMySQL, DriverPostgres, DriverGorm:
	default:
		return errors.Wrapf(ErrUnknownStorageDriver, "%s: %q", invalidErrMessage, c.Storage.Driver)
	}

	if c.Storage.Table == "" {
		c.Storage.Table = DefaultTable
	}

	if c.Storage.Driver == DriverGorm {
		c.DB.GormEngine = strings.ToLower(c.DB.GormEngine)
		switch c.DB.GormEngine {
		case "":
			c.DB.GormEngine = EngineSQLite
		case EngineSQLite, EngineMySQL, EnginePostgres:
		default:
			return errors.Wrapf(ErrUnknownGormEngine, "%s: %q", invalidErrMessage, c.DB.GormEngine)
		}
	}

	return nil
}
