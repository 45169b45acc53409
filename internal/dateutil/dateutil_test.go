package dateutil_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/dateutil"
)

func TestValidateAt(t *testing.T) {
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.Local)

	type testCase struct {
		name      string
		year      string
		month     string
		day       string
		wantValid bool
		wantMsg   string
	}

	tests := []testCase{
		{name: "PastDate", year: "2020", month: "1", day: "1", wantValid: true, wantMsg: "date is valid"},
		{name: "LeapDay", year: "2020", month: "2", day: "29", wantValid: true, wantMsg: "date is valid"},
		{name: "NonLeapFeb28", year: "2021", month: "2", day: "28", wantValid: true, wantMsg: "date is valid"},
		{name: "NonLeapFeb29", year: "2021", month: "2", day: "29", wantValid: false, wantMsg: "month 2 has no day 29"},
		{name: "LeapFeb30", year: "2020", month: "2", day: "30", wantValid: false, wantMsg: "month 2 has no day 30"},
		{name: "CenturyNotLeap", year: "1900", month: "2", day: "29", wantValid: false, wantMsg: "month 2 has no day 29"},
		{name: "QuadCenturyLeap", year: "2000", month: "2", day: "29", wantValid: true, wantMsg: "date is valid"},
		{name: "YearNotNumeric", year: "abc", month: "1", day: "1", wantValid: false, wantMsg: "date must be numeric"},
		{name: "MonthNotNumeric", year: "2020", month: "a", day: "1", wantValid: false, wantMsg: "date must be numeric"},
		{name: "DayNotNumeric", year: "2020", month: "1", day: "a", wantValid: false, wantMsg: "date must be numeric"},
		{name: "Empty", year: "", month: "", day: "", wantValid: false, wantMsg: "date must be numeric"},
		{name: "YearTooSmall", year: "1899", month: "1", day: "1", wantValid: false, wantMsg: "year must be between 1900 and 2100"},
		{name: "YearTooLarge", year: "2101", month: "1", day: "1", wantValid: false, wantMsg: "year must be between 1900 and 2100"},
		{name: "MonthZero", year: "2020", month: "0", day: "1", wantValid: false, wantMsg: "month must be between 1 and 12"},
		{name: "MonthThirteen", year: "2020", month: "13", day: "1", wantValid: false, wantMsg: "month must be between 1 and 12"},
		{name: "DayZero", year: "2020", month: "1", day: "0", wantValid: false, wantMsg: "month 1 has no day 0"},
		{name: "DayThirtyTwo", year: "2020", month: "1", day: "32", wantValid: false, wantMsg: "month 1 has no day 32"},
		{name: "Today", year: "2023", month: "1", day: "1", wantValid: true, wantMsg: "date is valid"},
		{name: "Tomorrow", year: "2023", month: "1", day: "2", wantValid: false, wantMsg: "date cannot be in the future"},
		{name: "FarFuture", year: "2099", month: "1", day: "1", wantValid: false, wantMsg: "date cannot be in the future"},
		{name: "Whitespace", year: " 2020 ", month: "01", day: "05", wantValid: true, wantMsg: "date is valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := dateutil.ValidateAt(now, tt.year, tt.month, tt.day)

			assert.Equal(t, tt.wantValid, valid)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestValidate_Today(t *testing.T) {
	now := time.Now()

	valid, msg := dateutil.Validate(strconv.Itoa(now.Year()), strconv.Itoa(int(now.Month())), strconv.Itoa(now.Day()))

	assert.True(t, valid, msg)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, dateutil.DaysInMonth(2023, 1))
	assert.Equal(t, 28, dateutil.DaysInMonth(2023, 2))
	assert.Equal(t, 29, dateutil.DaysInMonth(2024, 2))
	assert.Equal(t, 30, dateutil.DaysInMonth(2023, 11))
	assert.Equal(t, 0, dateutil.DaysInMonth(2023, 13))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2023-10-01", dateutil.FormatDate(2023, 10, 1))
	assert.Equal(t, "1999-01-31", dateutil.FormatDate(1999, 1, 31))
}

func FuzzValidate(f *testing.F) {
	f.Add("2020", "2", "29")
	f.Add("", "", "")
	f.Add("-1", "99999999999999999999", "\x00")

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	f.Fuzz(func(t *testing.T, year, month, day string) {
		valid, msg := dateutil.ValidateAt(now, year, month, day)

		assert.NotEmpty(t, msg)

		if valid {
			assert.Equal(t, "date is valid", msg)
		}
	})
}
