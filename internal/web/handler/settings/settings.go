// Package settings serves the settings document over the API.
package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoMailComposer/GoMailComposer/internal/config"
	settingsstore "github.com/GoMailComposer/GoMailComposer/internal/settings"
	"github.com/GoMailComposer/GoMailComposer/internal/web/handler"
)

// Path is the path of the settings resource.
const Path = "/settings"

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	store     *settingsstore.Store
	validator handler.XValidator
}

// Init registers the settings routes on router.
func (s *Service) Init(router fiber.Router, cfg *config.Config, store *settingsstore.Store) {
	if router == nil || cfg == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilRCSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = store

	router.Get(Path, s.Get)
	router.Put(Path, s.Put)
}

// Get returns the current settings document.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(s.store.Get())
}

// Put replaces the settings document.
// A candidate without createdAt keeps the creation time of the current document.
func (s *Service) Put(c *fiber.Ctx) error {
	candidate := settingsstore.Settings{}
	if err := c.BodyParser(&candidate); err != nil {
		log.Debug().Err(err).Msg("failed to parse settings body")

		return handler.Fail(c, fiber.StatusBadRequest, "invalid settings document")
	}

	if errs := s.validator.Validate(candidate); len(errs) > 0 {
		log.Debug().Int("failed", len(errs)).Msg("settings validation failed")

		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	if candidate.CreatedAt.IsZero() {
		candidate.CreatedAt = s.store.Get().CreatedAt
	}

	saved, err := s.store.Save(candidate)
	if err != nil {
		if errors.Is(err, settingsstore.ErrPersistence) {
			return handler.Fail(c, fiber.StatusInternalServerError, err.Error())
		}

		return err
	}

	log.Info().Str("provider", string(saved.EmailProvider)).Msg("settings saved")

	return c.JSON(saved)
}
