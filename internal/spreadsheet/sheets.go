package spreadsheet

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/smartworld/smartdesk/internal"
)

// SheetsSource reads the roster and attendance log from a Google spreadsheet.
// Values are fetched unformatted so date cells arrive as serial numbers,
// exactly like a raw workbook read.
type SheetsSource struct {
	svc             *sheets.Service
	spreadsheetID   string
	rosterRange     string
	attendanceRange string
}

// NewSheetsSource authenticates with a service-account key file.
func NewSheetsSource(ctx context.Context, credentialsFile, spreadsheetID, rosterRange, attendanceRange string) (*SheetsSource, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}

	return NewSheetsSourceWithService(svc, spreadsheetID, rosterRange, attendanceRange), nil
}

func NewSheetsSourceWithService(svc *sheets.Service, spreadsheetID, rosterRange, attendanceRange string) *SheetsSource {
	return &SheetsSource{
		svc:             svc,
		spreadsheetID:   spreadsheetID,
		rosterRange:     rosterRange,
		attendanceRange: attendanceRange,
	}
}

func (s *SheetsSource) Roster(ctx context.Context) ([]RosterRow, error) {
	t, err := s.readRange(ctx, s.rosterRange)
	if err != nil {
		return nil, err
	}
	return ParseRoster(t), nil
}

func (s *SheetsSource) Attendance(ctx context.Context) ([]AttendanceRow, error) {
	t, err := s.readRange(ctx, s.attendanceRange)
	if err != nil {
		return nil, err
	}
	return ParseAttendance(t), nil
}

func (s *SheetsSource) readRange(ctx context.Context, rng string) (Table, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return Table{}, internal.NewLoadFailure(fmt.Sprintf("failed to read sheet range %s", rng), err)
	}

	raw := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		raw[i] = cells
	}

	t := NewTable(raw)
	if len(t.Header) == 0 {
		return Table{}, internal.NewLoadFailure(fmt.Sprintf("sheet range %s has no header row", rng), nil)
	}
	return t, nil
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}
