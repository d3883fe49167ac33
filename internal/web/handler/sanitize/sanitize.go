// Package sanitize exposes the html sanitizer over the API.
package sanitize

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoMailComposer/GoMailComposer/internal/config"
	"github.com/GoMailComposer/GoMailComposer/internal/htmlsanitizer"
	"github.com/GoMailComposer/GoMailComposer/internal/settings"
	"github.com/GoMailComposer/GoMailComposer/internal/web/handler"
)

// Path is the path of the sanitize endpoint.
const Path = "/html/sanitize"

// Request is the body of the sanitize endpoint.
// Nil lists keep the defaults, empty lists allow nothing.
type Request struct {
	HTML              string   `json:"html"`
	Strict            bool     `json:"strict"`
	AllowedTags       []string `json:"allowedTags"`
	AllowedAttrs      []string `json:"allowedAttrs"`
	AllowDataAttr     bool     `json:"allowDataAttr"`
	AllowedURISchemes []string `json:"allowedUriSchemes"`
}

// Response is returned by the sanitize endpoint.
type Response struct {
	HTML string `json:"html"`
}

// Service is the sanitize handler service.
type Service struct {
	handler.Service
}

// Init registers the sanitize route on router.
func (s *Service) Init(router fiber.Router, cfg *config.Config, _ *settings.Store) {
	if router == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilRCSFatalLogMsg)
		return
	}

	router.Post(Path, s.Post)
}

// Post sanitizes the html of the request.
func (s *Service) Post(c *fiber.Ctx) error {
	req := Request{}
	if err := c.BodyParser(&req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Strict {
		return c.JSON(Response{HTML: htmlsanitizer.SanitizeStrict(req.HTML)})
	}

	return c.JSON(Response{HTML: htmlsanitizer.Sanitize(req.HTML, htmlsanitizer.Config{
		AllowedTags:       req.AllowedTags,
		AllowedAttrs:      req.AllowedAttrs,
		AllowDataAttr:     req.AllowDataAttr,
		AllowedURISchemes: req.AllowedURISchemes,
	})})
}
