package service

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/galaxy/internal/error_values"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("record_id", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if strings.TrimSpace(value) == "" {
				return false
			}
			// Ids travel as URL path segments
			for _, char := range value {
				if char == '/' || unicode.IsControl(char) {
					return false
				}
			}
			return true
		})
	})
}

func validateStruct(v any) error {
	InitValidator()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		err = errorvalues.ErrInvalidInput
		for _, fieldErr := range validationErrors {
			err = errors.Join(err, fieldErr)
		}
		return err
	}
	return errors.New("validation unexpected error: " + err.Error())
}
