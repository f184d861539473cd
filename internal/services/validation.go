package services

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"comercio/internal/models"

	"github.com/go-playground/validator/v10"
)

var contactEmailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidContactEmail reports whether email has the local@domain.tld shape
// required for customers.
func ValidContactEmail(email string) bool {
	return contactEmailRe.MatchString(email)
}

// ValidLooseEmail is the supplier rule: the address must contain '@' and '.'.
func ValidLooseEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// ValidTaxID reports whether s is exactly 14 digits.
func ValidTaxID(s string) bool {
	return len(s) == models.TaxIDLength && models.NormalizeTaxID(s) == s
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return ValidContactEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return ValidLooseEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("tax_id", func(fl validator.FieldLevel) bool {
		return ValidTaxID(fl.Field().String())
	})
	return v
}

var validate = newValidator()

// checkStruct validates every field of s.
func checkStruct(s interface{}) error {
	return translate(validate.Struct(s))
}

// checkFields validates only the named struct fields of s.
func checkFields(s interface{}, fields ...string) error {
	return translate(validate.StructPartial(s, fields...))
}

// translate turns the first validator failure into a ValidationError.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return invalid(field, "cannot be empty")
	case "gte":
		return invalid(field, "cannot be negative")
	case "oneof":
		return invalid(field, "must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "contact_email", "loose_email":
		return invalid(field, "invalid email")
	case "tax_id":
		return invalid(field, "must have exactly %d digits", models.TaxIDLength)
	default:
		return invalid(field, "failed on rule %s", fe.Tag())
	}
}
