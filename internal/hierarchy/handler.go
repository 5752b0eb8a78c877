package hierarchy

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/smartworld/smartdesk/internal/transport"
)

type ServiceAPI interface {
	AddEdge(ctx context.Context, employeeID, managerID string) (*Edge, error)
	RemoveEdge(ctx context.Context, employeeID string) error
	Clear(ctx context.Context) (int, error)
	Edges() []Edge
	BuildTree(lookup Lookup) []*Node
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Lookup  Lookup
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, lookup Lookup) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Lookup:      lookup,
	}
}

func (h *Handler) ListEdges(w http.ResponseWriter, r *http.Request) {
	edges := h.Service.Edges()
	h.WriteJSON(w, http.StatusOK, EdgesResponse{Hierarchy: edges, Total: len(edges)})
}

func (h *Handler) AddEdge(w http.ResponseWriter, r *http.Request) {
	var req AddEdgeRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	edge, err := h.Service.AddEdge(r.Context(), req.EmployeeID, req.ReportsTo)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, EdgeResponse{Message: "Hierarchy relationship added successfully", Edge: edge})
}

func (h *Handler) RemoveEdge(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if err := h.Service.RemoveEdge(r.Context(), employeeID); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Hierarchy relationship removed successfully"})
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Service.Clear(r.Context())
	if err != nil {
		h.Logger.Error("Clear: failed to clear hierarchy", "error", err)
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ClearResponse{Message: "Hierarchy cleared successfully", Removed: removed})
}

func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, TreeResponse{Roots: h.Service.BuildTree(h.Lookup)})
}
