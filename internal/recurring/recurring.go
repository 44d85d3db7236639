// Package recurring holds the date math for recurring task rules. Monthly is
// a fixed 30-day stride, not calendar-month arithmetic; the drift is accepted
// in exchange for stable comparisons on stored date strings.
package recurring

import (
	"fmt"
	"time"

	"github.com/mkondo/kajiboard/internal/model"
)

// Frequencies.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

// ValidFrequency reports whether f is a supported frequency.
func ValidFrequency(f string) bool {
	return f == Daily || f == Weekly || f == Monthly
}

func strideDays(frequency string) int {
	switch frequency {
	case Daily:
		return 1
	case Weekly:
		return 7
	case Monthly:
		return 30
	default:
		return 0
	}
}

// Advance returns the next run date after a single firing of the rule: the
// current date plus one stride. A rule that has fallen behind advances one
// stride per invocation, not all the way to the future.
func Advance(frequency, nextRunDate string) (string, error) {
	d, err := time.Parse(model.DateLayout, nextRunDate)
	if err != nil {
		return "", fmt.Errorf("parse next run date: %w", err)
	}
	n := strideDays(frequency)
	if n == 0 {
		return "", fmt.Errorf("unknown frequency %q", frequency)
	}
	return d.AddDate(0, 0, n).Format(model.DateLayout), nil
}

// DueDate returns today shifted by relativeDueDays, formatted for storage.
func DueDate(today time.Time, relativeDueDays int) string {
	return today.AddDate(0, 0, relativeDueDays).Format(model.DateLayout)
}
