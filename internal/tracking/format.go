package tracking

import (
	"strconv"
	"strings"
)

const confirmationPrefix = "Updated today: "

// Format renders "Col=value" pairs joined by ", " in insertion order.
func Format(u *Updates) string {
	parts := make([]string, 0, u.Len())
	u.Each(func(col Column, value float64) {
		parts = append(parts, string(col)+"="+FormatValue(value))
	})
	return strings.Join(parts, ", ")
}

// FormatValue prints the shortest decimal form ("7", "70.5").
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Confirmation is the text sent back to the chat after a successful update.
func Confirmation(u *Updates) string {
	return confirmationPrefix + Format(u)
}
