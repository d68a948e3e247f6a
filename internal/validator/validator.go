// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"playersbudget/internal/budgeting"
	"playersbudget/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("iso4217", validateISO4217)
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("line_item_unit", validateLineItemUnit)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
}

// IsCurrency reports whether code is an ISO 4217 code amounts can be
// formatted in.
func IsCurrency(code string) bool {
	return budgeting.IsCurrency(code)
}

func validateISO4217(fl validator.FieldLevel) bool {
	return budgeting.IsCurrency(fl.Field().String())
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateLineItemUnit(fl validator.FieldLevel) bool {
	unit := models.LineItemUnit(fl.Field().String())
	for _, u := range models.LineItemUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// decimalValue exposes decimal fields to numeric tags such as gte=0.
// A null decimal is reported as nil so omitempty skips it.
func decimalValue(field reflect.Value) interface{} {
	switch v := field.Interface().(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case decimal.NullDecimal:
		if !v.Valid {
			return nil
		}
		return v.Decimal.InexactFloat64()
	}
	return nil
}
