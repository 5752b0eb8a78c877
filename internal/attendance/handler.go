package attendance

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/smartworld/smartdesk/internal/transport"
)

type ServiceAPI interface {
	Search(query string) []Record
	IsPlaceholder() bool
	Create(ctx context.Context, r Record) (*Record, error)
	Update(ctx context.Context, id string, p Patch) (*Record, error)
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records := h.Service.Search(r.URL.Query().Get("search"))
	h.WriteJSON(w, http.StatusOK, RecordsResponse{
		Attendance:  records,
		Total:       len(records),
		Placeholder: h.Service.IsPlaceholder(),
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	rec, err := h.Service.Create(r.Context(), req.ToRecord())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, RecordResponse{Message: "Attendance record created successfully", Record: rec})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRecordRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	rec, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req.ToPatch())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, RecordResponse{Message: "Attendance record updated successfully", Record: rec})
}
