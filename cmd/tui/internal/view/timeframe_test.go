package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeframe_Range(t *testing.T) {
	// A Wednesday.
	now := time.Date(2023, 10, 18, 15, 0, 0, 0, time.UTC)

	type testCase struct {
		tf        Timeframe
		wantStart string
		wantEnd   string
	}

	tests := []testCase{
		{tf: TimeframeAll},
		{tf: TimeframeThisWeek, wantStart: "2023-10-16", wantEnd: "2023-10-18"},
		{tf: TimeframeLastWeek, wantStart: "2023-10-09", wantEnd: "2023-10-15"},
		{tf: TimeframeThisMonth, wantStart: "2023-10-01", wantEnd: "2023-10-18"},
		{tf: TimeframeLastMonth, wantStart: "2023-09-01", wantEnd: "2023-09-30"},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			start, end := tt.tf.Range(now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestTimeframe_RangeOnSunday(t *testing.T) {
	sunday := time.Date(2023, 10, 22, 9, 0, 0, 0, time.UTC)

	start, end := TimeframeThisWeek.Range(sunday)
	assert.Equal(t, "2023-10-16", start)
	assert.Equal(t, "2023-10-22", end)
}

func TestTimeframe_NextWraps(t *testing.T) {
	assert.Equal(t, TimeframeAll, TimeframeLastMonth.Next())
	assert.Equal(t, TimeframeThisWeek, TimeframeAll.Next())
}
