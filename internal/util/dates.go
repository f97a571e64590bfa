package util

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, normalizeDate(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// normalizeDate trims a timestamp suffix the data service may append.
func normalizeDate(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

// CompletionDate returns start + ceil(days) - 1 days, so a single day of work
// completes on the start date.
func CompletionDate(start string, days float64) (string, error) {
	if days <= 0 {
		return "", fmt.Errorf("days must be greater than 0")
	}
	t, err := ParseDate(start)
	if err != nil {
		return "", err
	}
	offset := int(math.Ceil(days)) - 1
	return t.AddDate(0, 0, offset).Format(DateLayout), nil
}

// FormatDate renders a YYYY-MM-DD date with layout, returning s unchanged if
// it does not parse.
func FormatDate(s, layout string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format(layout)
}
