package services

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kaushalkahapola/smart-campus/src/config"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(config.DATE_FORMAT, fl.Field().String())
		return err == nil
	})
	return v
}
