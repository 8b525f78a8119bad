// Package ledger implements the pure classification and aggregation logic of
// the household finance ledger: deciding which records contribute to a queried
// month, how much of a multi-month amount applies, and what totals a member
// sees. All functions are side-effect free and operate on in-memory values;
// persistence and visibility filtering live in the services layer.
package ledger

import (
	"math"
	"time"
)

// maxDisplayDay caps projected days of month so re-anchoring a transaction's
// day onto another month can never produce an invalid date (e.g. Feb 30).
const maxDisplayDay = 28

// MonthIndex maps a (year, month) pair onto a linear ordinal so that month
// distances reduce to integer subtraction. Every month comparison in this
// package goes through it.
func MonthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// MonthIndexOf returns the month index of a calendar date.
func MonthIndexOf(t time.Time) int {
	return MonthIndex(t.Year(), t.Month())
}

// ClampDay restricts a projected day of month to [1, 28].
func ClampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > maxDisplayDay {
		return maxDisplayDay
	}
	return day
}

// RoundCurrency rounds to two decimal places, half up on the scaled value.
// Repeated installment division uses this to keep per-month amounts at
// currency precision instead of accumulating floating-point drift.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
