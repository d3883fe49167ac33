package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoMailComposer/GoMailComposer/internal/config"
	"github.com/GoMailComposer/GoMailComposer/internal/settings"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(router fiber.Router, cfg *config.Config, store *settings.Store)
}
