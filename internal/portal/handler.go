package portal

import (
	"net/http"

	"github.com/smartworld/smartdesk/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Portal *Portal
}

func NewHandler(baseHandler *transport.BaseHandler, p *Portal) *Handler {
	return &Handler{BaseHandler: baseHandler, Portal: p}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Portal.Stats())
}

type RefreshResponse struct {
	Message string `json:"message"`
	Stats   Stats  `json:"stats"`
}

func (h *Handler) RefreshRoster(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Portal.Reload(r.Context())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, RefreshResponse{Message: "Roster refreshed successfully", Stats: stats})
}
