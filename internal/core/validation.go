// AngelaMos | 2026
// validation.go

package core

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	RoleStudent    = "student"
	RoleTutor      = "tutor"
	RoleSuperAdmin = "super admin"
)

const (
	minRating          = 1
	maxRating          = 5
	minPasswordHashLen = 9
)

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var validate = NewValidator()

// NewValidator returns a validator with the marketplace's custom tags
// registered: email_shape, user_role, rating and password_hash.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(fieldName)

	mustRegister(v, "email_shape", func(fl validator.FieldLevel) bool {
		return IsEmailShape(fl.Field().String())
	})
	mustRegister(v, "user_role", func(fl validator.FieldLevel) bool {
		return IsValidRole(fl.Field().String())
	})
	mustRegister(v, "rating", func(fl validator.FieldLevel) bool {
		return IsValidRating(int(fl.Field().Int()))
	})
	mustRegister(v, "password_hash", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) >= minPasswordHashLen
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "db"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func IsEmailShape(email string) bool {
	return strings.Contains(email, "@") && emailShape.MatchString(email)
}

func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTutor, RoleSuperAdmin:
		return true
	}
	return false
}

func IsValidRating(rating int) bool {
	return rating >= minRating && rating <= maxRating
}

// CollectValidation runs the struct tags of s and returns the failures as
// a ValidationError that callers may extend with cross-field rules. The
// result is never nil.
func CollectValidation(s any) *ValidationError {
	verr := &ValidationError{}

	err := validate.Struct(s)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("", err.Error())
		return verr
	}

	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), describe(fe))
	}

	return verr
}

// ValidateStruct is CollectValidation for callers with no extra rules.
func ValidateStruct(s any) error {
	return CollectValidation(s).OrNil()
}

// FormatValidationError renders the error returned by validator.Struct
// as a single human readable line.
func FormatValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Field()+" "+describe(fe))
	}
	return strings.Join(msgs, "; ")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email", "email_shape":
		return "must look like local@domain.tld"
	case "user_role":
		return "must be one of 'student', 'tutor', 'super admin'"
	case "rating":
		return "must be between 1 and 5"
	case "password_hash":
		return "must be longer than 8 characters"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
