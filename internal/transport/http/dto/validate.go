package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names (e.g. age_group) instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("bcrypt_len", validateBcryptLen)
	return v
}

// bcryptMaxBytes is the longest input bcrypt accepts.
const bcryptMaxBytes = 72

// validateBcryptLen checks the byte length, not the rune count.
func validateBcryptLen(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= bcryptMaxBytes
}

// validateStruct runs the struct tags and returns the first failure as a domain validation error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return fieldError(ves[0])
	}
	return domain.ErrInternal(err)
}

func fieldError(fe validator.FieldError) error {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "email":
		return domain.ErrInvalidField(field, "must be a valid email address")
	case "bcrypt_len":
		return domain.ErrInvalidField(field, fmt.Sprintf("must be at most %d bytes", bcryptMaxBytes))
	case "max":
		return domain.ErrInvalidField(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	default:
		return domain.ErrInvalidField(field, "is invalid")
	}
}
