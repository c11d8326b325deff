package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// emailTLDPattern requires a dotted domain part, which the stock email rule does not.
var emailTLDPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("email_tld", func(fl validator.FieldLevel) bool {
		return emailTLDPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct runs struct-tag validation and converts failures into apperrors values.
// An invalid email is reported as apperrors.ErrInvalidEmail; everything else as ErrValidation.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "email" || fe.Tag() == "email_tld" {
			return apperrors.ErrInvalidEmail
		}
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
