package config

import (
	"github.com/GoMailComposer/GoMailComposer/internal/logger"
)

// storage drivers.
const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverGorm     = "gorm"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Storage   Storage
	Title     string
	Webserver Webserver
}

// Storage selects the key-value medium the settings document is persisted in.
type Storage struct {
	Driver string // memory, mysql, postgres or gorm
	Table  string // table used by the mysql and postgres drivers
	Reset  bool   // drop all stored keys on start
}

// Webserver implement webserver settings.
type Webserver struct {
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
	APITokenHash string // argon2id hash of the API bearer token, empty disables the check
	BodyLimit    int    // max request body size in bytes
}
