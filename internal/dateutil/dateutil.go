// Package dateutil validates dates typed in as separate year, month and day
// fields.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinYear = 1900
	MaxYear = 2100
)

const (
	msgValid      = "date is valid"
	msgNotNumeric = "date must be numeric"
	msgYearRange  = "year must be between 1900 and 2100"
	msgMonthRange = "month must be between 1 and 12"
	msgFuture     = "date cannot be in the future"
)

// Validate checks the date against the calendar and rejects dates after today.
func Validate(year, month, day string) (bool, string) {
	return ValidateAt(time.Now(), year, month, day)
}

// ValidateAt is Validate with an explicit current time. The date is compared
// at local midnight, so today is always accepted.
func ValidateAt(now time.Time, year, month, day string) (bool, string) {
	y, errY := strconv.Atoi(strings.TrimSpace(year))
	m, errM := strconv.Atoi(strings.TrimSpace(month))
	d, errD := strconv.Atoi(strings.TrimSpace(day))

	if errY != nil || errM != nil || errD != nil {
		return false, msgNotNumeric
	}

	if y < MinYear || y > MaxYear {
		return false, msgYearRange
	}

	if m < 1 || m > 12 {
		return false, msgMonthRange
	}

	if d < 1 || d > DaysInMonth(y, m) {
		return false, fmt.Sprintf("month %d has no day %d", m, d)
	}

	if time.Date(y, time.Month(m), d, 0, 0, 0, 0, now.Location()).After(now) {
		return false, msgFuture
	}

	return true, msgValid
}

func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns 0 for a month outside 1..12.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeap(year) {
			return 29
		}

		return 28
	}

	return 0
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
