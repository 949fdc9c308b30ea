package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields; returns field -> failed rule, nil when valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// ValidateErr is Validate squeezed into a single error, for callers that
// surface one inline message at a time.
func ValidateErr(v interface{}) error {
	fields := Validate(v)
	if fields == nil {
		return nil
	}
	for field, tag := range fields {
		return fmt.Errorf("%s failed %q validation", field, tag)
	}
	return nil
}
