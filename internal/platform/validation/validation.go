package validation

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators wires the decimal validators used by request DTOs
// into gin's binding engine. Must be called once before routes are served.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("decimalgt0", decimalGreaterThanZero); err != nil {
		return fmt.Errorf("failed to register decimalgt0: %w", err)
	}
	if err := v.RegisterValidation("decimalgte0", decimalNonNegative); err != nil {
		return fmt.Errorf("failed to register decimalgte0: %w", err)
	}

	return nil
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.GreaterThan(decimal.Zero)
}

func decimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.GreaterThanOrEqual(decimal.Zero)
}
