package api

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern   = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Checkout field formats: 10-digit Indian mobile number and 6-digit
	// postal code.
	v.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})

	return &Validator{validator: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
