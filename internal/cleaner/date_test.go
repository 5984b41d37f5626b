package cleaner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	today := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	want := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "iso date", input: "2024-01-10", want: want(2024, 1, 10)},
		{name: "iso datetime", input: "2024-02-05 08:15:00", want: want(2024, 2, 5)},
		{name: "rfc3339", input: "2024-02-05T08:15:00Z", want: want(2024, 2, 5)},
		{name: "excel serial", input: "45301", want: want(2024, 1, 10)},
		{name: "excel serial with time", input: "45301.75", want: want(2024, 1, 10)},
		{name: "month first slashes", input: "01/10/2024", want: want(2024, 1, 10)},
		{name: "excel default format", input: "01-10-24", want: want(2024, 1, 10)},
		{name: "dotted day first", input: "10.01.2024", want: want(2024, 1, 10)},
		{name: "day first slashes", input: "25/01/2024", want: want(2024, 1, 25)},
		{name: "day first unpadded", input: "25/1/2024", want: want(2024, 1, 25)},
		{name: "day first dashes", input: "25-01-2024", want: want(2024, 1, 25)},
		{name: "month first dashes four digit year", input: "01-25-2024", want: want(2024, 1, 25)},
		{name: "ambiguous reads month first", input: "05/01/2024", want: want(2024, 5, 1)},
		{name: "dotted year first", input: "2024.01.25", want: want(2024, 1, 25)},
		{name: "compact", input: "20240125", want: want(2024, 1, 25)},
		{name: "compact invalid month defaults to today", input: "20241325", want: want(2026, 3, 4)},
		{name: "spelled month", input: "January 10, 2024", want: want(2024, 1, 10)},
		{name: "padded", input: "  2024-01-10 ", want: want(2024, 1, 10)},
		{name: "empty defaults to today", input: "", want: want(2026, 3, 4)},
		{name: "garbage defaults to today", input: "next tuesday", want: want(2026, 3, 4)},
		{name: "negative serial defaults to today", input: "-3", want: want(2026, 3, 4)},
		{name: "zero serial defaults to today", input: "0", want: want(2026, 3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.input, today))
		})
	}
}

func TestDate_TodayUsesCallerLocation(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	// 22:30 UTC on the 4th is already the 5th in EAT
	today := time.Date(2026, 3, 4, 22, 30, 0, 0, time.UTC).In(loc)

	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), Date("", today))
}

func TestParseISODate(t *testing.T) {
	got, err := ParseISODate(" 2024-02-05 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseISODate("05/02/2024")
	assert.Error(t, err)

	_, err = ParseISODate("2024-13-01")
	assert.Error(t, err)
}
