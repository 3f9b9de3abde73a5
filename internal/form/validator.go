package form

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const minReleaseYear = 1900

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^(\+\d{1,3})?[\s.-]?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)
)

// Validator checks form input and turns failures into user-facing messages.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// NewValidator builds a Validator. now supplies the clock for the release
// year window; nil means time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	val := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), now: now}
	val.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = val.v.RegisterValidation("releaseyear", val.releaseYear)
	_ = val.v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = val.v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return val
}

// MaxReleaseYear is the latest accepted release year.
func (val *Validator) MaxReleaseYear() int {
	return val.now().Year() + 5
}

func (val *Validator) releaseYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= minReleaseYear && year <= val.MaxReleaseYear()
}

// messages maps field key then failing tag to the text shown.
type messages map[string]map[string]string

func (val *Validator) check(input any, text messages) Errors {
	errs := Errors{}
	err := val.v.Struct(input)
	if err == nil {
		return errs
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		msg := text[field][fe.Tag()]
		if msg == "" {
			msg = "Invalid value"
		}
		errs[field] = msg
	}
	return errs
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s looks like a phone number.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}
