package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// loose_email accepts anything shaped like local@domain.tld
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	return v
}

type coordinates struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lng float64 `validate:"gte=-180,lte=180"`
}

func IsValidEmail(email string) bool {
	return validate.Var(email, "loose_email") == nil
}

// IsValidPassword requires at least 6 characters.
func IsValidPassword(password string) bool {
	return validate.Var(password, "min=6") == nil
}

// IsValidName requires 2 to 100 characters once trimmed.
func IsValidName(name string) bool {
	return validate.Var(strings.TrimSpace(name), "min=2,max=100") == nil
}

// IsValidCoordinates rejects out-of-range and NaN values.
func IsValidCoordinates(lat, lng float64) bool {
	return validate.Struct(coordinates{Lat: lat, Lng: lng}) == nil
}
