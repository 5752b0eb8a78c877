package spreadsheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartworld/smartdesk/internal/spreadsheet"
)

func TestSerialToDate(t *testing.T) {
	tests := []struct {
		name   string
		serial float64
		want   string
	}{
		{"excel epoch after leap bug", 61, "1900-03-01"},
		{"2023 date", 45000, "2023-03-15"},
		{"fraction ignored", 45000.75, "2023-03-15"},
		{"millennium", 36526, "2000-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spreadsheet.SerialToDate(tt.serial))
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"serial number", "45000", "2023-03-15"},
		{"iso date", "2021-07-04", "2021-07-04"},
		{"iso timestamp", "2021-07-04T10:30:00Z", "2021-07-04"},
		{"date time", "2021-07-04 10:30:00", "2021-07-04"},
		{"us format", "07/04/2021", "2021-07-04"},
		{"day month name", "4-Jul-2021", "2021-07-04"},
		{"unparseable keeps first token", "sometime next week", "sometime"},
		{"unparseable single token", "unknown", "unknown"},
		{"nan stays text", "nan", "nan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spreadsheet.NormalizeDate(tt.cell))
		})
	}
}

func TestNormalizeAttendanceDate(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{"2024-05-06T00:00:00", "2024-05-06"},
		{"2024-05-06 00:00:00", "2024-05-06"},
		{"2024-05-06", "2024-05-06"},
		{"45000", "2023-03-15"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, spreadsheet.NormalizeAttendanceDate(tt.cell))
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "09:00:00", spreadsheet.NormalizeTime("0.375"))
	assert.Equal(t, "17:30:00", spreadsheet.NormalizeTime("0.7291666666666666"))
	assert.Equal(t, "09:15", spreadsheet.NormalizeTime("09:15"))
	assert.Equal(t, "nan", spreadsheet.NormalizeTime("nan"))
}
