package room

import "time"

const (
	StatusVacant   = "vacant"
	StatusOccupied = "occupied"
)

// Booking is the single active reservation a room can hold.
type Booking struct {
	ID           string    `json:"id"`
	RoomID       string    `json:"roomId"`
	RoomName     string    `json:"roomName"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Purpose      string    `json:"purpose"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Room is occupied exactly when CurrentBooking is set; Bookings then holds
// that one booking and is empty otherwise.
type Room struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Location       string    `json:"location" yaml:"location"`
	Floor          string    `json:"floor" yaml:"floor"`
	Capacity       int       `json:"capacity" yaml:"capacity"`
	Amenities      string    `json:"amenities" yaml:"amenities"`
	Status         string    `json:"status" yaml:"-"`
	Bookings       []Booking `json:"bookings" yaml:"-"`
	CurrentBooking *Booking  `json:"currentBooking" yaml:"-"`
}

func (r *Room) occupied() bool {
	return r.CurrentBooking != nil
}

func (r *Room) occupy(b Booking) {
	r.Bookings = []Booking{b}
	cur := b
	r.CurrentBooking = &cur
	r.Status = StatusOccupied
}

func (r *Room) vacate() {
	r.Bookings = []Booking{}
	r.CurrentBooking = nil
	r.Status = StatusVacant
}

func (r *Room) clone() *Room {
	c := *r
	c.Bookings = append([]Booking{}, r.Bookings...)
	if r.CurrentBooking != nil {
		b := *r.CurrentBooking
		c.CurrentBooking = &b
	}
	return &c
}

// normalize repairs a room decoded from storage so the occupancy invariant
// holds regardless of what was saved.
func (r *Room) normalize() {
	if r.CurrentBooking == nil && len(r.Bookings) > 0 {
		b := r.Bookings[0]
		r.CurrentBooking = &b
	}
	if r.CurrentBooking == nil {
		r.vacate()
		return
	}
	r.occupy(*r.CurrentBooking)
}

// Filter selects rooms; empty fields match everything.
type Filter struct {
	Location string
	Floor    string
	Status   string
}

func (f Filter) matches(r *Room) bool {
	if f.Location != "" && r.Location != f.Location {
		return false
	}
	if f.Floor != "" && r.Floor != f.Floor {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

type BookingInput struct {
	EmployeeID   string
	EmployeeName string
	StartTime    time.Time
	EndTime      time.Time
	Purpose      string
}

type ClearResult struct {
	RoomsUpdated       int `json:"roomsUpdated"`
	PreviouslyOccupied int `json:"previouslyOccupied"`
}
