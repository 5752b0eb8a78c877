package spreadsheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/smartworld/smartdesk/internal"
)

// Source yields the two tabular inputs of the portal.
type Source interface {
	Roster(ctx context.Context) ([]RosterRow, error)
	Attendance(ctx context.Context) ([]AttendanceRow, error)
}

// FileSource reads .xlsx or .csv files from disk. The first worksheet of a
// workbook is used.
type FileSource struct {
	RosterPath     string
	AttendancePath string
}

func NewFileSource(rosterPath, attendancePath string) *FileSource {
	return &FileSource{RosterPath: rosterPath, AttendancePath: attendancePath}
}

func (s *FileSource) Roster(ctx context.Context) ([]RosterRow, error) {
	t, err := ReadFile(ctx, s.RosterPath)
	if err != nil {
		return nil, err
	}
	return ParseRoster(t), nil
}

func (s *FileSource) Attendance(ctx context.Context) ([]AttendanceRow, error) {
	t, err := ReadFile(ctx, s.AttendancePath)
	if err != nil {
		return nil, err
	}
	return ParseAttendance(t), nil
}

// ReadFile loads a table from path, picking the reader by extension. Every
// failure is reported as a LoadFailure.
func ReadFile(ctx context.Context, path string) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, internal.NewLoadFailure("load cancelled", err)
	}
	if path == "" {
		return Table{}, internal.NewLoadFailure("no spreadsheet path configured", nil)
	}

	var (
		raw [][]string
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx":
		raw, err = readWorkbook(path)
	case ".csv":
		raw, err = readCSV(path)
	default:
		return Table{}, internal.NewLoadFailure(fmt.Sprintf("unsupported spreadsheet format %q", filepath.Ext(path)), nil)
	}
	if err != nil {
		return Table{}, internal.NewLoadFailure(fmt.Sprintf("failed to read %s", path), err)
	}

	t := NewTable(raw)
	if len(t.Header) == 0 {
		return Table{}, internal.NewLoadFailure(fmt.Sprintf("%s has no header row", path), nil)
	}
	return t, nil
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	// raw values keep date cells as serial numbers
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}
