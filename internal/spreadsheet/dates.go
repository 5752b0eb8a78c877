package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// serialEpoch is day zero for spreadsheet serial dates as the roster has
// always converted them: serial n is serialEpoch + (n - 2) days. The offset
// of two absorbs the 1900 leap-year bug and the one-based count.
var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

var stringDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// SerialToDate converts a spreadsheet serial day number to YYYY-MM-DD.
// The fractional time-of-day part is ignored.
func SerialToDate(serial float64) string {
	days := int(math.Floor(serial)) - 2
	return serialEpoch.AddDate(0, 0, days).Format(dateLayout)
}

// NormalizeDate turns a raw date-of-joining cell into YYYY-MM-DD. Numeric
// cells are serial days; text cells are parsed as calendar dates and, when
// that fails, everything before the first space is kept verbatim.
func NormalizeDate(cell string) string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return ""
	}
	if n, ok := parseNumber(cell); ok {
		return SerialToDate(n)
	}
	for _, layout := range stringDateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.UTC().Format(dateLayout)
		}
	}
	if i := strings.IndexByte(cell, ' '); i >= 0 {
		return cell[:i]
	}
	return cell
}

// NormalizeAttendanceDate keeps the calendar part of an attendance timestamp:
// text before 'T' for ISO values, else the first ten characters.
func NormalizeAttendanceDate(cell string) string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return ""
	}
	if n, ok := parseNumber(cell); ok {
		return SerialToDate(n)
	}
	if i := strings.IndexByte(cell, 'T'); i >= 0 {
		return cell[:i]
	}
	if len(cell) > 10 {
		return cell[:10]
	}
	return cell
}

// NormalizeTime renders fractional-day time cells as HH:MM:SS and passes text through.
func NormalizeTime(cell string) string {
	cell = strings.TrimSpace(cell)
	n, ok := parseNumber(cell)
	if !ok || n < 0 || n >= 1 {
		return cell
	}
	secs := int(math.Round(n * 24 * 60 * 60))
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}

// parseNumber accepts finite decimal numbers only; "nan" and "inf" stay text.
func parseNumber(cell string) (float64, bool) {
	n, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
