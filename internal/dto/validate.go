package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance for request DTOs.
var Validate = validator.New()

var usernameRe = regexp.MustCompile(`^[a-z0-9._]{3,30}$`)

func init() {
	Validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
}
