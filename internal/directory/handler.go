package directory

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/transport"
)

const maxUploadBytes = 5 << 20

type ServiceAPI interface {
	List(f Filter) []Employee
	Get(id string) (Employee, bool)
	Departments() []string
	Locations() []string
	UpdateImage(ctx context.Context, id, image string) (*Employee, error)
	UploadImage(ctx context.Context, id, filename string, r io.Reader) (*Employee, error)
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employees := h.Service.List(Filter{
		Search:     q.Get("search"),
		Department: q.Get("department"),
		Location:   q.Get("location"),
	})
	h.WriteJSON(w, http.StatusOK, EmployeesResponse{Employees: employees, Total: len(employees)})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := h.Service.Get(id)
	if !ok {
		h.WriteServiceError(w, internal.ErrEmployeeNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, EmployeeResponse{Employee: &e})
}

func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateImageRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	e, err := h.Service.UpdateImage(r.Context(), id, req.ProfileImage)
	if err != nil {
		h.Logger.Error("UpdateImage: failed to update profile image", "id", id, "error", err)
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ImageResponse{
		Message:  "Profile image updated successfully",
		ImageURL: e.ProfileImage,
		Employee: e,
	})
}

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		h.WriteServiceError(w, errImageFieldMissing)
		return
	}
	defer file.Close()

	e, err := h.Service.UploadImage(r.Context(), id, header.Filename, file)
	if err != nil {
		h.Logger.Error("UploadImage: failed to store image", "id", id, "error", err)
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ImageResponse{
		Message:  "Image uploaded successfully",
		ImageURL: e.ProfileImage,
		Employee: e,
	})
}

func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, DepartmentsResponse{Departments: h.Service.Departments()})
}

func (h *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, LocationsResponse{Locations: h.Service.Locations()})
}
