// Package emails exposes email list parsing and validation over the API.
package emails

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoMailComposer/GoMailComposer/internal/config"
	"github.com/GoMailComposer/GoMailComposer/internal/emaillist"
	"github.com/GoMailComposer/GoMailComposer/internal/settings"
	"github.com/GoMailComposer/GoMailComposer/internal/web/handler"
)

const (
	// ParsePath splits a raw list.
	ParsePath = "/emails/parse"

	// ValidatePath validates a raw list.
	ValidatePath = "/emails/validate"
)

// Request is the body of both email endpoints.
type Request struct {
	Emails string `json:"emails"`
}

// ParseResponse is returned by the parse endpoint.
type ParseResponse struct {
	Emails []string `json:"emails"`
}

// Service is the email list handler service.
type Service struct {
	handler.Service
}

// Init registers the email list routes on router.
func (s *Service) Init(router fiber.Router, cfg *config.Config, _ *settings.Store) {
	if router == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilRCSFatalLogMsg)
		return
	}

	router.Post(ParsePath, s.Parse)
	router.Post(ValidatePath, s.Validate)
}

// Parse returns the trimmed entries of the list.
func (s *Service) Parse(c *fiber.Ctx) error {
	req := Request{}
	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	return c.JSON(ParseResponse{Emails: emaillist.Parse(req.Emails)})
}

// Validate returns the validation result of the list.
func (s *Service) Validate(c *fiber.Ctx) error {
	req := Request{}
	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	return c.JSON(emaillist.Validate(req.Emails))
}
