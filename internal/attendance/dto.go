package attendance

type CreateRecordRequest struct {
	EmployeeID       string  `json:"employeeId"`
	EmployeeName     string  `json:"employeeName"`
	Date             string  `json:"date"`
	PunchIn          *string `json:"punchIn"`
	PunchOut         *string `json:"punchOut"`
	PunchInLocation  string  `json:"punchInLocation"`
	PunchOutLocation string  `json:"punchOutLocation"`
	Status           string  `json:"status"`
	TotalHours       float64 `json:"totalHours"`
	Remarks          *string `json:"remarks"`
}

func (r CreateRecordRequest) ToRecord() Record {
	return Record{
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		Date:             r.Date,
		PunchIn:          r.PunchIn,
		PunchOut:         r.PunchOut,
		PunchInLocation:  r.PunchInLocation,
		PunchOutLocation: r.PunchOutLocation,
		Status:           r.Status,
		TotalHours:       r.TotalHours,
		Remarks:          r.Remarks,
	}
}

type UpdateRecordRequest struct {
	PunchOut         *string  `json:"punchOut"`
	PunchOutLocation *string  `json:"punchOutLocation"`
	Status           *string  `json:"status"`
	TotalHours       *float64 `json:"totalHours"`
	Remarks          *string  `json:"remarks"`
}

func (r UpdateRecordRequest) ToPatch() Patch {
	return Patch{
		PunchOut:         r.PunchOut,
		PunchOutLocation: r.PunchOutLocation,
		Status:           r.Status,
		TotalHours:       r.TotalHours,
		Remarks:          r.Remarks,
	}
}

type RecordsResponse struct {
	Attendance  []Record `json:"attendance"`
	Total       int      `json:"total"`
	Placeholder bool     `json:"placeholder"`
}

type RecordResponse struct {
	Message string  `json:"message"`
	Record  *Record `json:"record"`
}
