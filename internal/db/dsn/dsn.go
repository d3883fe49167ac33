// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/GoMailComposer/GoMailComposer/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
func Create(cfg *config.Config) string {
	return CreateFor(cfg.DB.GormEngine, cfg.DB)
}

// CreateFor builds the Data Source Name for the given engine.
// For sqlite the database name is the file path.
func CreateFor(engine string, db config.DB) string {
	switch engine {
	case config.EngineSQLite:
		if db.Extras == "" {
			return db.Name
		}

		return db.Name + "?" + db.Extras
	case config.EnginePostgres:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	}
}
