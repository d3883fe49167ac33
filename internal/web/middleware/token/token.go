// Package token guards the API with a bearer token.
//
// The configured value is the argon2id hash of the token, see the token
// command. An empty hash disables the check.
//
// Usage:
//
//	api.Use(token.New(token.Config{Hash: cfg.Webserver.APITokenHash}))
package token

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoMailComposer/GoMailComposer/internal/apitoken"
	"github.com/GoMailComposer/GoMailComposer/internal/web/handler"
)

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Hash is the argon2id hash of the accepted token.
	Hash string
}

// ConfigDefault is the default config.
var ConfigDefault = Config{
	Next: nil,
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	return config[0]
}

// New creates the bearer token middleware.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	if cfg.Hash == "" {
		log.Warn().Msg("api token hash not configured: api is unprotected")
	}

	return func(c *fiber.Ctx) error {
		if cfg.Hash == "" || (cfg.Next != nil && cfg.Next(c)) {
			return c.Next()
		}

		if !apitoken.Verify(apitoken.FromHeader(c.Get(fiber.HeaderAuthorization)), cfg.Hash) {
			log.Debug().Str("IP", c.IP()).Str("path", c.Path()).Msg("api token rejected")

			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")

			return handler.Fail(c, fiber.StatusUnauthorized, "invalid or missing api token")
		}

		return c.Next()
	}
}
