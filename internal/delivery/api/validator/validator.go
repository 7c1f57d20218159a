// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	domainerrors "playground/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	userIDPattern = regexp.MustCompile(`^[a-z0-9_]{4,30}$`)
	birthPattern  = regexp.MustCompile(`^[0-9]{8}$`)
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New registers the userid and birth tags and names fields by their json, query or form tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
		return userIDPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("birth", func(fl validator.FieldLevel) bool {
		return birthPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate reports missing fields as ErrMissingFields and malformed ones as ErrBadRequest,
// each listing the offending json field names.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return domainerrors.ErrMissingFields.WithDetails(strings.Join(missing, ", "))
	}

	return domainerrors.ErrBadRequest.WithDetails(strings.Join(invalid, ", "))
}

func jsonName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}
