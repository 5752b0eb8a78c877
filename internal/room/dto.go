package room

import (
	"fmt"
	"time"

	"github.com/smartworld/smartdesk/internal"
)

// bookingTimeLayouts accepts full RFC 3339 and the minute-precision form
// sent by datetime-local inputs, which is read in the server's zone.
var bookingTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type BookRequest struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Purpose      string `json:"purpose"`
}

func (r BookRequest) ToInput() (BookingInput, error) {
	start, err := parseBookingTime("startTime", r.StartTime)
	if err != nil {
		return BookingInput{}, err
	}
	end, err := parseBookingTime("endTime", r.EndTime)
	if err != nil {
		return BookingInput{}, err
	}
	return BookingInput{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		StartTime:    start,
		EndTime:      end,
		Purpose:      r.Purpose,
	}, nil
}

func parseBookingTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range bookingTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, internal.NewValidationFieldError(field, fmt.Sprintf("%s must be an ISO 8601 date-time", field), internal.ErrCodeInvalidDate)
}

type RoomsResponse struct {
	Rooms []Room `json:"rooms"`
	Total int    `json:"total"`
}

type BookingResponse struct {
	Message string   `json:"message"`
	Booking *Booking `json:"booking"`
}

type CancelResponse struct {
	Message  string `json:"message"`
	RoomName string `json:"roomName"`
}

type ClearAllResponse struct {
	Message string `json:"message"`
	ClearResult
}

type ReinitializeResponse struct {
	Message string `json:"message"`
	Rooms   int    `json:"rooms"`
}
