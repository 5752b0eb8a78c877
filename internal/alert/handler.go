package alert

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/transport"
)

type ServiceAPI interface {
	ListActive(ctx context.Context, audience string) ([]Alert, error)
	ListAll(ctx context.Context) ([]Alert, error)
	Create(ctx context.Context, a Alert) (*Alert, error)
	Update(ctx context.Context, id string, p Patch) (*Alert, error)
	Delete(ctx context.Context, id string) error
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

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Service.ListActive(r.Context(), r.URL.Query().Get("target_audience"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, AlertsResponse{Alerts: alerts, Total: len(alerts)})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, AlertsResponse{Alerts: alerts, Total: len(alerts)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAlertRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	a := req.ToAlert()
	if a.CreatedBy == "" {
		a.CreatedBy = internal.RoleFromContext(r.Context())
	}

	created, err := h.Service.Create(r.Context(), a)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, AlertResponse{Message: "Alert created successfully", Alert: created})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateAlertRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	updated, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, AlertResponse{Message: "Alert updated successfully", Alert: updated})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Alert deleted successfully"})
}
