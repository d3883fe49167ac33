package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	// Test basic config fields
	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)

	// Storage section
	assert.Equal(t, DriverGorm, cfg.Storage.Driver)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.NotEmpty(t, cfg.DB.Name)

	// Nested logger sections with renamed keys
	assert.Equal(t, "info", cfg.Log.LogLevel)
	assert.True(t, cfg.Log.Console.Enabled)
	assert.Equal(t, "access.log", cfg.Log.File.AccessLog)
	assert.Equal(t, 10, cfg.Log.File.ErrorMaxSize)
	assert.Equal(t, 2*time.Second, cfg.Log.DataDog.Timeout)
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read main config file")
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	// Set JSON override environment variable
	jsonOverride := `{"Title":"Test Override","Webserver":{"Port":9090},"Storage":{"Driver":"memory"}}`
	t.Setenv(EnvConfigJSON, jsonOverride)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.NotEmpty(t, cfg.Webserver.URL, "keys missing from the override keep the file value")
}

func TestReadConfigWithInvalidJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestReadConfigWithEnvKey(t *testing.T) {
	t.Setenv(EnvPrefix+"_WEBSERVER_PORT", "7070")

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Webserver.Port)
}

func TestReadConfig_CustomFile(t *testing.T) {
	dir := t.TempDir()
	content := `
Title = "custom"

[Webserver]
Port = 8181
URL = "http://localhost:8181"

[Storage]
Driver = "postgres"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600))

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.Title)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, DefaultTable, cfg.Storage.Table)
	assert.Equal(t, defaultShutDownTime, cfg.Webserver.ShutDownTime)
	assert.Equal(t, defaultBodyLimit, cfg.Webserver.BodyLimit)
}

func TestConfigValidation(t *testing.T) {
	webserver := Webserver{Port: 8080, URL: "http://localhost:8080"}

	tests := []struct {
		name        string
		config      Config
		wantErr     error
		wantDriver  string
		wantEngine  string
		wantShutDwn int
	}{
		{
			name:        "valid config gets defaults",
			config:      Config{Webserver: webserver},
			wantDriver:  DriverMemory,
			wantShutDwn: defaultShutDownTime,
		},
		{
			name:    "missing port",
			config:  Config{Webserver: Webserver{URL: "http://localhost:8080"}},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name:    "missing URL",
			config:  Config{Webserver: Webserver{Port: 8080}},
			wantErr: ErrEmptyURL,
		},
		{
			name:    "unknown driver",
			config:  Config{Webserver: webserver, Storage: Storage{Driver: "redis"}},
			wantErr: ErrUnknownStorageDriver,
		},
		{
			name:        "driver is case insensitive",
			config:      Config{Webserver: webserver, Storage: Storage{Driver: "MySQL"}},
			wantDriver:  DriverMySQL,
			wantShutDwn: defaultShutDownTime,
		},
		{
			name:        "gorm defaults to sqlite",
			config:      Config{Webserver: webserver, Storage: Storage{Driver: DriverGorm}},
			wantDriver:  DriverGorm,
			wantEngine:  EngineSQLite,
			wantShutDwn: defaultShutDownTime,
		},
		{
			name: "unknown gorm engine",
			config: Config{
				Webserver: webserver,
				Storage:   Storage{Driver: DriverGorm},
				DB:        DB{GormEngine: "oracle"},
			},
			wantErr: ErrUnknownGormEngine,
		},
		{
			name: "shutdown time kept",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080", ShutDownTime: 30},
			},
			wantDriver:  DriverMemory,
			wantShutDwn: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, tt.config.Storage.Driver)
			assert.Equal(t, tt.wantEngine, tt.config.DB.GormEngine)
			assert.Equal(t, tt.wantShutDwn, tt.config.Webserver.ShutDownTime)
		})
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		Storage: Storage{Driver: DriverMemory},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	require.NotEmpty(t, tomlStr)

	// Check if output contains expected values
	assert.Contains(t, tomlStr, "Test")
	assert.Contains(t, tomlStr, "8080")
	assert.True(t, strings.Contains(tomlStr, "[Webserver]"))
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	require.NotEmpty(t, jsonStr)

	// Check if output is valid JSON by checking for expected fields
	assert.Contains(t, jsonStr, `"Title": "Test"`)
	assert.Contains(t, jsonStr, `"Port": 8080`)
}
