// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the domain validations
// registered.
func New() *Validator {
	v := validator.New()
	_ = RegisterDomainValidations(v)
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// RegisterDomainValidations adds the application's custom binding tags to an
// existing validator engine, typically the one gin binds requests with:
//
//	clock    - zero-padded 24h "HH:MM"
//	dateonly - calendar date "YYYY-MM-DD"
func RegisterDomainValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("clock", validClock); err != nil {
		return err
	}
	return v.RegisterValidation("dateonly", validDateOnly)
}

func validClock(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

func validDateOnly(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
