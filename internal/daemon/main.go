// Package daemon wires storage, settings store and web service together.
package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoMailComposer/GoMailComposer/internal/config"
	"github.com/GoMailComposer/GoMailComposer/internal/settings"
	"github.com/GoMailComposer/GoMailComposer/internal/storage"
	"github.com/GoMailComposer/GoMailComposer/internal/web"
)

// ErrConfigNil is returned if New is called without config.
var ErrConfigNil = errors.New("daemon config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	storage    storage.Storage
	store      *settings.Store
	webService *web.Service
}

// New opens the configured storage and creates the web service on top of it.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	medium, err := storage.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open settings storage")
	}

	store := settings.New(medium)

	return &Daemon{
		cfg:        cfg,
		storage:    medium,
		store:      store,
		webService: web.New(cfg, store),
	}, nil
}

// Store returns the settings store of the daemon.
func (d *Daemon) Store() *settings.Store {
	return d.store
}

// Start serves the API until SIGINT or SIGTERM, then closes the storage.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	errc := make(chan error, 1)

	go func() {
		errc <- d.webService.Start(addr)
	}()

	go d.webService.WaitShutdown()

	log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("web service started")

	err := <-errc

	if closeErr := d.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close settings storage")
	}

	return err
}

// Close releases the storage connection.
func (d *Daemon) Close() error {
	return d.storage.Close()
}
