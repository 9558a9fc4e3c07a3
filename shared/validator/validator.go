package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	val "github.com/go-playground/validator/v10"

	"tzbot/shared/failure"
	"tzbot/shared/timezone"
)

// TagTimezone checks a string field against the recognized timezone set.
const TagTimezone = "timezone"

// TagMax is the built-in length limit tag.
const TagMax = "max"

type Validator struct {
	validate *val.Validate
}

// New returns a Validator whose "timezone" tag is backed by zones.
func New(zones timezone.Validator) (*Validator, error) {
	validate := val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation(TagTimezone, func(fl val.FieldLevel) bool {
		return zones.IsValid(fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register %s validation: %w", TagTimezone, err)
	}

	return &Validator{validate: validate}, nil
}

// Decode reads JSON from r into data and validates the result.
// https://github.com/go-playground/validator
func Decode[T any](v *Validator, r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return v.Struct(data)
}

// Struct validates data and converts the first failing rule into a bad request Failure.
func (v *Validator) Struct(data any) error {
	err := v.validate.Struct(data)
	if err != nil {
		return &failure.Failure{
			Code:    http.StatusBadRequest,
			Message: message(err),
			Err:     err,
		}
	}

	return nil
}

// FailedOn reports whether err is a validation error raised by tag.
func FailedOn(err error, tag string) bool {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return false
	}

	for _, valErr := range valErrors {
		if valErr.Tag() == tag {
			return true
		}
	}

	return false
}
