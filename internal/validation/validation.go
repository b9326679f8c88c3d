// Package validation checks request inputs against their `validate` struct tags
// and reports the first failure as a domain validation error.
//
// The client-facing message comes from the field's `msg_<tag>` struct tag when
// present, otherwise from its `msg` tag.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"emphub/internal/domain"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("isodate", isDate)
	return &Validator{validate: v}
}

// Struct validates s. Failures are returned as a domain ValidationError
// carrying the message of the first field that failed, in declaration order.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewInternalError(fmt.Errorf("validation: %w", err))
	}

	return domain.NewValidationError(messageFor(s, verrs[0]))
}

func messageFor(s interface{}, fe validator.FieldError) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if field, ok := t.FieldByName(fe.StructField()); ok {
		if msg := field.Tag.Get("msg_" + fe.Tag()); msg != "" {
			return msg
		}
		if msg := field.Tag.Get("msg"); msg != "" {
			return msg
		}
	}

	return fmt.Sprintf("%s is invalid", fe.Field())
}

func isDate(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}
