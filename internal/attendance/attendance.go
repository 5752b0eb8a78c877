package attendance

import (
	"strings"
	"time"

	"github.com/smartworld/smartdesk/internal/spreadsheet"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusHalfDay = "half_day"
	StatusAbsent  = "absent"
)

var statuses = []string{StatusPresent, StatusLate, StatusHalfDay, StatusAbsent}

type Record struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employeeId"`
	EmployeeName     string    `json:"employeeName"`
	Date             string    `json:"date"`
	PunchIn          *string   `json:"punchIn"`
	PunchOut         *string   `json:"punchOut"`
	PunchInLocation  string    `json:"punchInLocation"`
	PunchOutLocation string    `json:"punchOutLocation"`
	Status           string    `json:"status"`
	TotalHours       float64   `json:"totalHours"`
	Remarks          *string   `json:"remarks"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func FromRow(row spreadsheet.AttendanceRow, loadedAt time.Time) Record {
	return Record{
		ID:               row.ID,
		EmployeeID:       row.EmployeeID,
		EmployeeName:     row.EmployeeName,
		Date:             row.Date,
		PunchIn:          row.PunchIn,
		PunchOut:         row.PunchOut,
		PunchInLocation:  row.PunchInLocation,
		PunchOutLocation: row.PunchOutLocation,
		Status:           row.Status,
		TotalHours:       row.TotalHours,
		Remarks:          row.Remarks,
		CreatedAt:        loadedAt,
		UpdatedAt:        loadedAt,
	}
}

// Patch is a punch-out style update; nil fields are left alone. Total hours
// are recomputed from the punch times unless TotalHours is supplied.
type Patch struct {
	PunchOut         *string
	PunchOutLocation *string
	Status           *string
	TotalHours       *float64
	Remarks          *string
}

func (p Patch) apply(r *Record) {
	if p.PunchOut != nil {
		out := *p.PunchOut
		r.PunchOut = &out
	}
	if p.PunchOutLocation != nil {
		r.PunchOutLocation = *p.PunchOutLocation
	}
	if p.Status != nil {
		r.Status = strings.ToLower(*p.Status)
	}
	if p.Remarks != nil {
		remarks := *p.Remarks
		r.Remarks = &remarks
	}
	switch {
	case p.TotalHours != nil:
		r.TotalHours = *p.TotalHours
	case p.PunchOut != nil && r.PunchIn != nil:
		r.TotalHours = hoursBetween(*r.PunchIn, *r.PunchOut)
	}
}

// Person is the minimum the placeholder generator needs from the directory.
type Person struct {
	ID   string
	Name string
}
