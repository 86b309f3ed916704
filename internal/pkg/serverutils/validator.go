package serverutils

import (
	"noter-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tags and converts failures into a Validation error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if verr := apperror.FromValidationError(err); verr != nil {
			return verr
		}
		return apperror.Validation("Invalid request payload")
	}
	return nil
}
