package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/alert"
	"github.com/smartworld/smartdesk/internal/attendance"
	"github.com/smartworld/smartdesk/internal/auth"
	"github.com/smartworld/smartdesk/internal/directory"
	"github.com/smartworld/smartdesk/internal/hierarchy"
	"github.com/smartworld/smartdesk/internal/metrics"
	"github.com/smartworld/smartdesk/internal/policy"
	"github.com/smartworld/smartdesk/internal/portal"
	"github.com/smartworld/smartdesk/internal/room"
	"github.com/smartworld/smartdesk/internal/transport/middleware"
	"github.com/smartworld/smartdesk/internal/transport/swagger"
)

// Handlers groups everything RegisterAllRoutes mounts. A nil handler leaves
// its routes unregistered.
type Handlers struct {
	Auth       *auth.Handler
	RBAC       *auth.RBACAuthorization
	Directory  *directory.Handler
	Hierarchy  *hierarchy.Handler
	Rooms      *room.Handler
	Alerts     *alert.Handler
	Attendance *attendance.Handler
	Policies   *policy.Handler
	Portal     *portal.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(metrics.Middleware)

	if cfg.Observability.Metrics.Enabled {
		router.Handle(cfg.Observability.Metrics.Path, metrics.Handler())
	}

	openAPIPath := cfg.Server.OpenAPIPath
	if openAPIPath == "" {
		openAPIPath = "./api/openapi.yml"
	}
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, openAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler())

	if cfg.Data.UploadsDir != "" {
		uploads := http.StripPrefix("/api/uploads/", http.FileServer(http.Dir(cfg.Data.UploadsDir)))
		router.Handle("/api/uploads/*", uploads)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth == nil || h.RBAC == nil {
			logger.Warn("auth handler not configured; API routes disabled")
			return
		}

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", h.Auth.Login)
			ar.Post("/refresh", h.Auth.RefreshToken)
			ar.With(h.Auth.AuthMiddleware).Get("/me", h.Auth.Me)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			admin := h.RBAC.RequireAdmin()

			if h.Directory != nil {
				pr.Get("/employees", h.Directory.ListEmployees)
				pr.Get("/employees/{id}", h.Directory.GetEmployee)
				pr.With(admin).Put("/employees/{id}/image", h.Directory.UpdateImage)
				pr.With(admin).Post("/employees/{id}/upload-image", h.Directory.UploadImage)
				pr.Get("/departments", h.Directory.GetDepartments)
				pr.Get("/locations", h.Directory.GetLocations)
			}

			if h.Portal != nil {
				pr.Get("/stats", h.Portal.GetStats)
				pr.With(admin).Post("/refresh-roster", h.Portal.RefreshRoster)
			}

			if h.Hierarchy != nil {
				pr.Route("/hierarchy", func(hr chi.Router) {
					hr.Get("/", h.Hierarchy.ListEdges)
					hr.Get("/tree", h.Hierarchy.GetTree)
					hr.Group(func(ar chi.Router) {
						ar.Use(admin)
						ar.Post("/", h.Hierarchy.AddEdge)
						ar.Delete("/", h.Hierarchy.Clear)
						ar.Delete("/{employeeId}", h.Hierarchy.RemoveEdge)
					})
				})
			}

			if h.Rooms != nil {
				pr.Route("/meeting-rooms", func(rr chi.Router) {
					rr.Get("/", h.Rooms.ListRooms)
					rr.Post("/{id}/book", h.Rooms.Book)
					rr.Delete("/{id}/booking", h.Rooms.Cancel)
					rr.Delete("/{id}/booking/{bookingId}", h.Rooms.Cancel)
					rr.With(admin).Delete("/clear-all-bookings", h.Rooms.ClearAll)
					rr.With(admin).Post("/reinitialize", h.Rooms.Reinitialize)
				})
			}

			if h.Alerts != nil {
				pr.Route("/alerts", func(lr chi.Router) {
					lr.Get("/", h.Alerts.ListActive)
					lr.Group(func(ar chi.Router) {
						ar.Use(admin)
						ar.Get("/all", h.Alerts.ListAll)
						ar.Post("/", h.Alerts.Create)
						ar.Put("/{id}", h.Alerts.Update)
						ar.Delete("/{id}", h.Alerts.Delete)
					})
				})
			}

			if h.Attendance != nil {
				pr.Get("/attendance", h.Attendance.List)
				pr.With(admin).Post("/attendance", h.Attendance.Create)
				pr.With(admin).Put("/attendance/{id}", h.Attendance.Update)
			}

			if h.Policies != nil {
				pr.Get("/policies", h.Policies.List)
				pr.With(admin).Post("/policies", h.Policies.Create)
				pr.With(admin).Put("/policies/{id}", h.Policies.Update)
				pr.With(admin).Delete("/policies/{id}", h.Policies.Delete)
			}
		})
	})
}
