package budgeting

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// displayLocale is fixed so formatted amounts are reproducible.
var displayLocale = language.AmericanEnglish

// ParseCurrency returns the unit for an upper-case ISO 4217 code. It is the
// single check behind request validation and formatting.
func ParseCurrency(code string) (currency.Unit, error) {
	if len(code) != 3 || strings.ToUpper(code) != code {
		return currency.Unit{}, fmt.Errorf("currency %q: want three upper-case letters", code)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency %q: %w", code, err)
	}
	if unit == currency.XXX {
		return currency.Unit{}, fmt.Errorf("currency %q: no currency", code)
	}
	return unit, nil
}

// IsCurrency reports whether code is accepted by ParseCurrency.
func IsCurrency(code string) bool {
	_, err := ParseCurrency(code)
	return err == nil
}

// FormatCurrency renders amount in whole units of the ISO 4217 currency code,
// e.g. "$1,235" for 1234.56 USD or "CA$1,235" for CAD. Amounts are rounded
// half away from zero. An unknown or malformed code is returned as an error;
// there is no fallback currency.
func FormatCurrency(amount decimal.Decimal, code string) (string, error) {
	unit, err := ParseCurrency(code)
	if err != nil {
		return "", fmt.Errorf("format amount: %w", err)
	}

	symbol := message.NewPrinter(displayLocale).Sprint(currency.Symbol(unit))
	if r, _ := utf8.DecodeLastRuneInString(symbol); unicode.IsLetter(r) {
		symbol += " "
	}

	whole := amount.Round(0)
	sign := ""
	if whole.IsNegative() {
		sign = "-"
	}
	return sign + symbol + groupThousands(whole.Abs().String()), nil
}

// groupThousands inserts en-US group separators into a run of digits.
func groupThousands(digits string) string {
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}
