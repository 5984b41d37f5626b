package cleaner

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	// Excel serial day numbers are accepted up to 9999-12-31.
	maxExcelSerial = 2958465
	compactLayout  = "20060102"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"01-02-06",
	"1-2-06",
	// day-first only matches once month-first has failed, i.e. the first field is over 12
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006.01.02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"02-Jan-2006",
}

// Date parses a spreadsheet date cell: an Excel serial number or one of the common textual
// layouts. Anything missing or unparseable yields today's date. The result is a calendar
// date at UTC midnight.
func Date(s string, today time.Time) time.Time {
	s = trim(s)
	if s == "" {
		return DateOnly(today)
	}

	// Eight digits can never be a valid serial, so they are read as YYYYMMDD.
	if len(s) == len(compactLayout) && digitsOnly(s) == s {
		if t, err := time.Parse(compactLayout, s); err == nil {
			return DateOnly(t)
		}
		return DateOnly(today)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "-/") {
		if f >= 1 && f <= maxExcelSerial {
			if t, err := excelize.ExcelDateToTime(f, false); err == nil {
				return DateOnly(t)
			}
		}
		return DateOnly(today)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOnly(t)
		}
	}
	return DateOnly(today)
}

// ParseISODate parses a YYYY-MM-DD query parameter.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", trim(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// DateOnly drops the clock part, keeping the calendar date as seen in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
