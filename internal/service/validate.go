package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/aanand-mishra/school-records/internal/apperrors"
)

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves the whole package.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// notblank ships in the non-standard set: "required" alone lets "  "
	// through.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	// Report fields by their JSON names (first_name, not FirstName), which
	// is what HTTP and CLI users actually typed.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkStruct runs the validate:"..." tags on v and maps every failure
// onto the error taxonomy. All failures are joined, so errors.Is works for
// each of them.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidArgument, err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fieldError(fe))
	}
	return errors.Join(errs...)
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "notblank", "required":
		// A missing date of birth is both missing and not a date.
		if fe.StructField() == "DateOfBirth" {
			return fmt.Errorf("%w: %w: %s is required (YYYY-MM-DD)",
				apperrors.ErrInvalidArgument, apperrors.ErrInvalidFormat, fe.Field())
		}
		return fmt.Errorf("%w: %s is required", apperrors.ErrInvalidArgument, fe.Field())
	case "datetime":
		return fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format, got %q",
			apperrors.ErrInvalidFormat, fe.Field(), fe.Value())
	case "gt":
		return fmt.Errorf("%w: %s must be positive", apperrors.ErrInvalidArgument, fe.Field())
	default:
		return fmt.Errorf("%w: %s is invalid", apperrors.ErrInvalidArgument, fe.Field())
	}
}

func checkID(what string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s id must be positive, got %d", apperrors.ErrInvalidArgument, what, id)
	}
	return nil
}

func checkNotBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", apperrors.ErrInvalidArgument, field)
	}
	return nil
}
