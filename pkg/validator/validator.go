package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/haulhire/crm/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator,
// extended with the domain tags request DTOs rely on.
type CustomValidator struct {
	v *validator.Validate
}

// New creates a validator with the domain tags registered
func New() *CustomValidator {
	v := validator.New()

	// "stage" restricts a string to the fixed kanban pipeline stages.
	_ = v.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
		return entities.IsValidStage(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
