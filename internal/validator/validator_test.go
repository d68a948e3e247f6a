package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type lineItemInput struct {
	Currency string              `validate:"omitempty,iso4217"`
	Unit     string              `validate:"omitempty,line_item_unit"`
	Color    string              `validate:"omitempty,hex_color"`
	Quantity decimal.NullDecimal `validate:"omitempty,gte=0"`
	UnitCost *decimal.Decimal    `validate:"omitempty,gte=0"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidate()
	negative := decimal.NewFromInt(-5)
	positive := decimal.RequireFromString("12.50")

	tests := []struct {
		name    string
		in      lineItemInput
		wantErr bool
	}{
		{"empty is valid", lineItemInput{}, false},
		{"valid currency", lineItemInput{Currency: "EUR"}, false},
		{"unknown currency", lineItemInput{Currency: "EURO"}, true},
		{"lowercase currency", lineItemInput{Currency: "usd"}, true},
		{"valid unit", lineItemInput{Unit: "per_event"}, false},
		{"unknown unit", lineItemInput{Unit: "per_fortnight"}, true},
		{"valid color", lineItemInput{Color: "#1a2B3c"}, false},
		{"invalid color", lineItemInput{Color: "blue"}, true},
		{"null quantity", lineItemInput{Quantity: decimal.NullDecimal{}}, false},
		{"positive quantity", lineItemInput{Quantity: decimal.NewNullDecimal(positive)}, false},
		{"negative quantity", lineItemInput{Quantity: decimal.NewNullDecimal(negative)}, true},
		{"positive unit cost", lineItemInput{UnitCost: &positive}, false},
		{"negative unit cost", lineItemInput{UnitCost: &negative}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsCurrency(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"CHF", true},
		{"CAD", true},
		{"XXX", false},
		{"chf", false},
		{"CH", false},
		// Codes the display formatter has no data for.
		{"VES", false},
		{"MRU", false},
	}
	for _, tt := range tests {
		if got := IsCurrency(tt.code); got != tt.want {
			t.Errorf("IsCurrency(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
