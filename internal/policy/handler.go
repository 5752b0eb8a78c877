package policy

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/smartworld/smartdesk/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, category string) ([]Policy, error)
	Create(ctx context.Context, p Policy) (*Policy, error)
	Update(ctx context.Context, id string, p Patch) (*Policy, error)
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	policies, err := h.Service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, PoliciesResponse{Policies: policies, Total: len(policies)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePolicyRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	p, err := h.Service.Create(r.Context(), req.ToPolicy())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, PolicyResponse{Message: "Policy created successfully", Policy: p})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePolicyRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	p, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req.ToPatch())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, PolicyResponse{Message: "Policy updated successfully", Policy: p})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Policy deleted successfully"})
}
