package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Roster column headers, upper-cased.
const (
	ColEmpID            = "EMP ID"
	ColEmpName          = "EMP NAME"
	ColDepartment       = "DEPARTMENT"
	ColGrade            = "GRADE"
	ColReportingManager = "REPORTING MANAGER"
	ColReportingID      = "REPORTING ID"
	ColLocation         = "LOCATION"
	ColMobile           = "MOBILE"
	ColExtension        = "EXTENSION NUMBER"
	ColEmail            = "EMAIL ID"
	ColDateOfJoining    = "DATE OF JOINING"
)

// Attendance column headers, upper-cased.
const (
	ColAttEmployeeID       = "EMPLOYEE_ID"
	ColAttEmployeeName     = "EMPLOYEE_NAME"
	ColAttDate             = "DATE"
	ColAttPunchIn          = "PUNCH_IN"
	ColAttPunchOut         = "PUNCH_OUT"
	ColAttPunchInLocation  = "PUNCH_IN_LOCATION"
	ColAttPunchOutLocation = "PUNCH_OUT_LOCATION"
	ColAttStatus           = "STATUS"
	ColAttTotalHours       = "TOTAL_HOURS"
	ColAttRemarks          = "REMARKS"
)

const (
	DefaultReportingManager = "*"
	DefaultExtension        = "0"
	DefaultProfileImage     = "/api/placeholder/150/150"
)

// RosterRow is one normalized employee row.
type RosterRow struct {
	EmpID            string
	Name             string
	Department       string
	Grade            string
	ReportingManager string
	ReportingID      *string
	Location         string
	Mobile           string
	Extension        string
	Email            string
	DateOfJoining    string
	ProfileImage     string
}

// AttendanceRow is one normalized attendance log row.
type AttendanceRow struct {
	ID               string
	EmployeeID       string
	EmployeeName     string
	Date             string
	PunchIn          *string
	PunchOut         *string
	PunchInLocation  string
	PunchOutLocation string
	Status           string
	TotalHours       float64
	Remarks          *string
}

// ParseRoster normalizes roster records. Rows without an employee id are skipped.
func ParseRoster(t Table) []RosterRow {
	records := t.Records()
	out := make([]RosterRow, 0, len(records))
	for _, rec := range records {
		id := strings.TrimSpace(rec[ColEmpID])
		if id == "" {
			continue
		}

		row := RosterRow{
			EmpID:            id,
			Name:             strings.TrimSpace(rec[ColEmpName]),
			Department:       strings.TrimSpace(rec[ColDepartment]),
			Grade:            strings.TrimSpace(rec[ColGrade]),
			ReportingManager: strings.TrimSpace(rec[ColReportingManager]),
			Location:         strings.TrimSpace(rec[ColLocation]),
			Mobile:           strings.TrimSpace(rec[ColMobile]),
			Extension:        strings.TrimSpace(rec[ColExtension]),
			Email:            strings.TrimSpace(rec[ColEmail]),
			DateOfJoining:    NormalizeDate(rec[ColDateOfJoining]),
			ProfileImage:     DefaultProfileImage,
		}
		if row.ReportingManager == "" {
			row.ReportingManager = DefaultReportingManager
		}
		if row.Extension == "" {
			row.Extension = DefaultExtension
		}
		if rid := strings.TrimSpace(rec[ColReportingID]); rid != "" {
			row.ReportingID = &rid
		}
		out = append(out, row)
	}
	return out
}

// ParseAttendance normalizes attendance records. Ids are att_NNNN in file
// order; rows without an employee id are skipped but still consume an id.
func ParseAttendance(t Table) []AttendanceRow {
	records := t.Records()
	out := make([]AttendanceRow, 0, len(records))
	for i, rec := range records {
		empID := strings.TrimSpace(rec[ColAttEmployeeID])
		if empID == "" {
			continue
		}
		row := AttendanceRow{
			ID:               fmt.Sprintf("att_%04d", i+1),
			EmployeeID:       empID,
			EmployeeName:     strings.TrimSpace(rec[ColAttEmployeeName]),
			Date:             NormalizeAttendanceDate(rec[ColAttDate]),
			PunchIn:          optional(NormalizeTime(rec[ColAttPunchIn])),
			PunchOut:         optional(NormalizeTime(rec[ColAttPunchOut])),
			PunchInLocation:  strings.TrimSpace(rec[ColAttPunchInLocation]),
			PunchOutLocation: strings.TrimSpace(rec[ColAttPunchOutLocation]),
			Status:           strings.ToLower(strings.TrimSpace(rec[ColAttStatus])),
			Remarks:          optional(rec[ColAttRemarks]),
		}
		if h, err := strconv.ParseFloat(strings.TrimSpace(rec[ColAttTotalHours]), 64); err == nil && !math.IsNaN(h) && !math.IsInf(h, 0) {
			row.TotalHours = h
		}
		out = append(out, row)
	}
	return out
}

// optional maps blank and pandas "nan" cells to nil.
func optional(cell string) *string {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return nil
	}
	return &cell
}
