package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	// ErrorResponse represents a single failed field of a validation.
	ErrorResponse struct {
		Error       bool        `json:"error"`
		FailedField string      `json:"failedField"`
		Tag         string      `json:"tag"`
		Value       interface{} `json:"value"`
	}

	// XValidator validates request bodies with the struct tags of their type.
	XValidator struct{}

	// GlobalErrorHandlerResp represents a global error response structure.
	GlobalErrorHandlerResp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

var validate = validator.New()

// Validate performs validation on the provided data and returns a slice of ErrorResponse.
func (v XValidator) Validate(data interface{}) []ErrorResponse {
	var (
		validationErrors []ErrorResponse
		errs             validator.ValidationErrors
	)

	if !errors.As(validate.Struct(data), &errs) {
		return nil
	}

	for _, err := range errs {
		validationErrors = append(validationErrors, ErrorResponse{
			Error:       true,
			FailedField: err.Namespace(),
			Tag:         err.Tag(),
			Value:       err.Value(),
		})
	}

	return validationErrors
}

// Fail sends a GlobalErrorHandlerResp with status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(GlobalErrorHandlerResp{
		Success: false,
		Message: message,
	})
}
