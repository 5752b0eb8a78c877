package directory

import (
	"github.com/smartworld/smartdesk/internal/spreadsheet"
)

const (
	AllDepartments = "All Departments"
	AllLocations   = "All Locations"
)

type Employee struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Department       string  `json:"department"`
	Grade            string  `json:"grade"`
	Location         string  `json:"location"`
	Mobile           string  `json:"mobile"`
	Extension        string  `json:"extension"`
	Email            string  `json:"email"`
	DateOfJoining    string  `json:"dateOfJoining"`
	ReportingManager string  `json:"reportingManager"`
	ReportingID      *string `json:"reportingId"`
	ProfileImage     string  `json:"profileImage"`
}

func FromRosterRow(row spreadsheet.RosterRow) Employee {
	return Employee{
		ID:               row.EmpID,
		Name:             row.Name,
		Department:       row.Department,
		Grade:            row.Grade,
		Location:         row.Location,
		Mobile:           row.Mobile,
		Extension:        row.Extension,
		Email:            row.Email,
		DateOfJoining:    row.DateOfJoining,
		ReportingManager: row.ReportingManager,
		ReportingID:      row.ReportingID,
		ProfileImage:     row.ProfileImage,
	}
}

// Filter narrows a directory listing. Empty fields and the "All ..."
// sentinels match everything.
type Filter struct {
	Search     string
	Department string
	Location   string
}

func (f Filter) department() string {
	if f.Department == AllDepartments {
		return ""
	}
	return f.Department
}

func (f Filter) location() string {
	if f.Location == AllLocations {
		return ""
	}
	return f.Location
}
