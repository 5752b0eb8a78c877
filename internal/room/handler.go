package room

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/smartworld/smartdesk/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, f Filter) ([]Room, error)
	Book(ctx context.Context, roomID string, in BookingInput) (*Booking, error)
	Cancel(ctx context.Context, roomID, bookingID string) (*Room, error)
	ClearAll(ctx context.Context) (ClearResult, error)
	Reinitialize(ctx context.Context) (int, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rooms, err := h.Service.List(r.Context(), Filter{
		Location: q.Get("location"),
		Floor:    q.Get("floor"),
		Status:   q.Get("status"),
	})
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, RoomsResponse{Rooms: rooms, Total: len(rooms)})
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	booking, err := h.Service.Book(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, BookingResponse{Message: "Room booked successfully", Booking: booking})
}

// Cancel serves both /{id}/booking and /{id}/booking/{bookingId}.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	room, err := h.Service.Cancel(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "bookingId"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, CancelResponse{Message: "Booking cancelled successfully", RoomName: room.Name})
}

func (h *Handler) ClearAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.ClearAll(r.Context())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ClearAllResponse{Message: "All bookings cleared successfully", ClearResult: res})
}

func (h *Handler) Reinitialize(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.Reinitialize(r.Context())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ReinitializeResponse{Message: "Meeting rooms reinitialized", Rooms: n})
}
