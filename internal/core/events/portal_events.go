package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeBookingCreated   = "booking.created"
	EventTypeBookingCancelled = "booking.cancelled"
	EventTypeBookingsCleared  = "bookings.cleared"
	EventTypeAlertCreated     = "alert.created"
	EventTypeRosterReloaded   = "roster.reloaded"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type BookingCreatedEvent struct {
	BaseEvent
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	EmployeeID string    `json:"employee_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

func NewBookingCreatedEvent(bookingID, roomID, employeeID string, start, end time.Time) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseEvent: newBase(EventTypeBookingCreated, map[string]interface{}{
			"booking_id":  bookingID,
			"room_id":     roomID,
			"employee_id": employeeID,
			"start_time":  start,
			"end_time":    end,
		}),
		BookingID:  bookingID,
		RoomID:     roomID,
		EmployeeID: employeeID,
		StartTime:  start,
		EndTime:    end,
	}
}

type BookingCancelledEvent struct {
	BaseEvent
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
}

func NewBookingCancelledEvent(bookingID, roomID string) *BookingCancelledEvent {
	return &BookingCancelledEvent{
		BaseEvent: newBase(EventTypeBookingCancelled, map[string]interface{}{
			"booking_id": bookingID,
			"room_id":    roomID,
		}),
		BookingID: bookingID,
		RoomID:    roomID,
	}
}

type BookingsClearedEvent struct {
	BaseEvent
	RoomsUpdated       int `json:"rooms_updated"`
	PreviouslyOccupied int `json:"previously_occupied"`
}

func NewBookingsClearedEvent(roomsUpdated, previouslyOccupied int) *BookingsClearedEvent {
	return &BookingsClearedEvent{
		BaseEvent: newBase(EventTypeBookingsCleared, map[string]interface{}{
			"rooms_updated":       roomsUpdated,
			"previously_occupied": previouslyOccupied,
		}),
		RoomsUpdated:       roomsUpdated,
		PreviouslyOccupied: previouslyOccupied,
	}
}

type AlertCreatedEvent struct {
	BaseEvent
	AlertID        string `json:"alert_id"`
	Priority       string `json:"priority"`
	TargetAudience string `json:"target_audience"`
}

func NewAlertCreatedEvent(alertID, priority, audience string) *AlertCreatedEvent {
	return &AlertCreatedEvent{
		BaseEvent: newBase(EventTypeAlertCreated, map[string]interface{}{
			"alert_id":        alertID,
			"priority":        priority,
			"target_audience": audience,
		}),
		AlertID:        alertID,
		Priority:       priority,
		TargetAudience: audience,
	}
}

type RosterReloadedEvent struct {
	BaseEvent
	Employees int  `json:"employees"`
	Succeeded bool `json:"succeeded"`
}

func NewRosterReloadedEvent(employees int, succeeded bool) *RosterReloadedEvent {
	return &RosterReloadedEvent{
		BaseEvent: newBase(EventTypeRosterReloaded, map[string]interface{}{
			"employees": employees,
			"succeeded": succeeded,
		}),
		Employees: employees,
		Succeeded: succeeded,
	}
}
