package util

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount with Indian digit grouping (12,34,567.50).
// places < 0 keeps the amount's own precision with trailing zeros removed.
func FormatINR(amount decimal.Decimal, places int32) string {
	if places < 0 {
		_, frac, _ := strings.Cut(amount.String(), ".")
		places = int32(len(frac))
	}
	return inrPrinter.Sprintf("%."+strconv.Itoa(int(places))+"f", amount.Round(places).InexactFloat64())
}
