package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/imamik/inithome/internal/provisioning"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// Struct tags cover the declarative checks (required fields, identity
// range, absolute base path); the request-level checks that cannot be
// expressed in tags, like traversal-free subdirectories and octal mode
// strings, are delegated to the provisioning validators so the CLI and the
// core reject exactly the same inputs.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	req, err := cfg.ToRequest()
	if err != nil {
		return err
	}

	for _, ve := range provisioning.ValidateRequest(req) {
		if ve.IsError() {
			return provisioning.ConfigurationError{Field: ve.Field, Message: ve.Message}
		}
	}

	return nil
}

// formatValidationError converts validator errors into configuration errors
// so they carry the configuration exit code.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return provisioning.ConfigurationError{
				Field:   e.Namespace(),
				Message: fmt.Sprintf("validation failed on '%s' tag (value: %v)", e.Tag(), e.Value()),
			}
		}
	}
	return err
}
