package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gymbooking/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	errors := make(map[string]string)
	for _, err := range verrs {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// Check runs Validate and folds any failures into domain.ErrValidation.
func Check(v interface{}) error {
	fields := Validate(v)
	if len(fields) == 0 {
		return nil
	}
	parts := make([]string, 0, len(fields))
	for f, tag := range fields {
		parts = append(parts, f+" "+tag)
	}
	sort.Strings(parts)
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(parts, ", "))
}
