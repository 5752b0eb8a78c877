package room

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/core/common/validation"
	"github.com/smartworld/smartdesk/internal/core/events"
	"github.com/smartworld/smartdesk/internal/kvstore"
	"github.com/smartworld/smartdesk/internal/metrics"
)

const (
	StateKey     = "meetingRooms_data"
	LastSavedKey = "meetingRooms_lastSaved"
)

// StateStore persists the serialized room collection. Get returns
// kvstore.ErrNotFound for a key that was never written.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	SetMany(ctx context.Context, values map[string]string) error
}

type Service struct {
	mu     sync.Mutex
	rooms  []*Room
	store  StateStore
	bus    events.Publisher
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(store StateStore, bus events.Publisher, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		bus:    bus,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init restores the saved rooms, or the default catalog when nothing is
// saved, and immediately drops bookings that ended while the process was down.
func (s *Service) Init(ctx context.Context) error {
	rooms, fresh, err := s.restore(ctx)
	if err != nil {
		return err
	}
	changed := s.cleanupExpired(rooms)

	s.mu.Lock()
	defer s.mu.Unlock()
	if fresh || changed > 0 {
		if err := s.save(ctx, rooms); err != nil {
			return err
		}
	}
	s.commit(rooms)
	s.logger.Info("meeting rooms loaded", "rooms", len(rooms), "fresh", fresh, "expired", changed)
	return nil
}

func (s *Service) restore(ctx context.Context) ([]*Room, bool, error) {
	raw, err := s.store.Get(ctx, StateKey)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		rooms, err := DefaultCatalog()
		return rooms, true, err
	case err != nil:
		return nil, false, internal.NewInternalError("failed to read meeting rooms", err)
	}

	var rooms []*Room
	if err := json.Unmarshal([]byte(raw), &rooms); err != nil || len(rooms) == 0 {
		s.logger.Warn("saved meeting rooms unreadable; using default catalog", "error", err)
		rooms, err := DefaultCatalog()
		return rooms, true, err
	}
	for _, r := range rooms {
		r.normalize()
	}
	return rooms, false, nil
}

// List returns rooms matching f after releasing expired bookings.
func (s *Service) List(ctx context.Context, f Filter) ([]Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.snapshot()
	if n := s.cleanupExpired(rooms); n > 0 {
		if err := s.save(ctx, rooms); err != nil {
			s.logger.Error("failed to persist expired booking cleanup", "error", err)
		}
		s.commit(rooms)
	}

	out := make([]Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		if f.matches(r) {
			out = append(out, *r.clone())
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.ID == id {
			return r.clone(), nil
		}
	}
	return nil, internal.ErrRoomNotFound
}

// Locations lists distinct room locations in catalog order.
func (s *Service) Locations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, r := range s.rooms {
		if _, ok := seen[r.Location]; ok {
			continue
		}
		seen[r.Location] = struct{}{}
		out = append(out, r.Location)
	}
	return out
}

func (s *Service) Book(ctx context.Context, roomID string, in BookingInput) (*Booking, error) {
	v := validation.NewValidator()
	v.Field("employeeId", in.EmployeeID).Required()
	v.Field("startTime", in.StartTime).Required()
	v.Field("endTime", in.EndTime).Required()
	if err := v.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.snapshot()
	s.cleanupExpired(rooms)
	r := find(rooms, roomID)
	if r == nil {
		return nil, internal.ErrRoomNotFound
	}

	now := s.now()
	switch {
	case r.occupied():
		return nil, s.reject(internal.ErrAlreadyBooked)
	case in.StartTime.Before(now):
		return nil, s.reject(internal.ErrPastBooking)
	case !in.EndTime.After(in.StartTime):
		return nil, s.reject(internal.ErrEndBeforeStart)
	}

	booking := Booking{
		ID:           s.newID(),
		RoomID:       r.ID,
		RoomName:     r.Name,
		EmployeeID:   in.EmployeeID,
		EmployeeName: in.EmployeeName,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Purpose:      in.Purpose,
		CreatedAt:    now,
	}
	r.occupy(booking)

	if err := s.save(ctx, rooms); err != nil {
		return nil, err
	}
	s.commit(rooms)

	s.logger.Info("room booked", "room", r.ID, "booking", booking.ID, "employee", booking.EmployeeID)
	s.publish(ctx, events.NewBookingCreatedEvent(booking.ID, r.ID, booking.EmployeeID, booking.StartTime, booking.EndTime))
	return &booking, nil
}

// Cancel vacates roomID. A non-empty bookingID must match the active booking.
func (s *Service) Cancel(ctx context.Context, roomID, bookingID string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.snapshot()
	r := find(rooms, roomID)
	if r == nil {
		return nil, internal.ErrRoomNotFound
	}
	if !r.occupied() {
		return nil, internal.ErrNothingToCancel
	}
	if bookingID != "" && r.CurrentBooking.ID != bookingID {
		return nil, internal.ErrBookingNotFound
	}

	cancelled := r.CurrentBooking.ID
	r.vacate()
	if err := s.save(ctx, rooms); err != nil {
		return nil, err
	}
	s.commit(rooms)

	s.logger.Info("booking cancelled", "room", r.ID, "booking", cancelled)
	s.publish(ctx, events.NewBookingCancelledEvent(cancelled, r.ID))
	return r.clone(), nil
}

// ClearAll vacates every room. Bookings that already ended are released
// first, so PreviouslyOccupied counts only live ones.
func (s *Service) ClearAll(ctx context.Context) (ClearResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.snapshot()
	s.cleanupExpired(rooms)
	res := ClearResult{RoomsUpdated: len(rooms)}
	for _, r := range rooms {
		if r.occupied() {
			res.PreviouslyOccupied++
		}
		r.vacate()
	}
	if err := s.save(ctx, rooms); err != nil {
		return ClearResult{}, err
	}
	s.commit(rooms)

	s.logger.Info("all bookings cleared", "rooms", res.RoomsUpdated, "previously_occupied", res.PreviouslyOccupied)
	s.publish(ctx, events.NewBookingsClearedEvent(res.RoomsUpdated, res.PreviouslyOccupied))
	return res, nil
}

// Reinitialize discards saved state and restores the default catalog.
func (s *Service) Reinitialize(ctx context.Context) (int, error) {
	rooms, err := DefaultCatalog()
	if err != nil {
		return 0, internal.NewInternalError("failed to load room catalog", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, rooms); err != nil {
		return 0, err
	}
	s.commit(rooms)
	s.logger.Info("meeting rooms reinitialized", "rooms", len(rooms))
	return len(rooms), nil
}

// cleanupExpired vacates rooms whose booking ended before now and returns
// how many were released.
func (s *Service) cleanupExpired(rooms []*Room) int {
	now := s.now()
	n := 0
	for _, r := range rooms {
		if r.occupied() && r.CurrentBooking.EndTime.Before(now) {
			s.logger.Debug("releasing expired booking", "room", r.ID, "booking", r.CurrentBooking.ID)
			r.vacate()
			n++
		}
	}
	return n
}

func (s *Service) save(ctx context.Context, rooms []*Room) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return internal.NewInternalError("failed to encode meeting rooms", err)
	}
	err = s.store.SetMany(ctx, map[string]string{
		StateKey:     string(data),
		LastSavedKey: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Error("failed to save meeting rooms", "error", err)
		return internal.NewInternalError("failed to save meeting rooms", err)
	}
	return nil
}

// commit must be called with mu held.
func (s *Service) commit(rooms []*Room) {
	s.rooms = rooms
	occupied := 0
	for _, r := range rooms {
		if r.occupied() {
			occupied++
		}
	}
	metrics.RoomsOccupied.Set(float64(occupied))
}

func (s *Service) snapshot() []*Room {
	out := make([]*Room, len(s.rooms))
	for i, r := range s.rooms {
		out[i] = r.clone()
	}
	return out
}

func (s *Service) reject(err *internal.AppError) error {
	metrics.BookingsRejected.WithLabelValues(string(err.Code)).Inc()
	return err
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish event", "type", e.EventType(), "error", err)
	}
}

func find(rooms []*Room, id string) *Room {
	for _, r := range rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}
