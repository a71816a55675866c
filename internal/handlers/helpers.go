package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validationMessage flattens validator errors into a single client-facing
// message with the offending fields.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Validation error"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "Validation error: " + strings.Join(fields, ", ")
}
