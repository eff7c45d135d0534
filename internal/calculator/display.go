package calculator

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const maxDisplayFraction = 8

// FormatNumber renders a numeric string for the display. Input that already
// holds a decimal point is shown verbatim so in-progress fractions are not
// disturbed; other numbers get thousands grouping. Strings that do not parse,
// such as ErrorSentinel, are returned unchanged.
func FormatNumber(s string) string {
	if strings.Contains(s, ".") {
		return s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(maxDisplayFraction)))
}
