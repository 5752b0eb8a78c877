package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/attendance"
	"github.com/smartworld/smartdesk/internal/auth"
	"github.com/smartworld/smartdesk/internal/kvstore"
	"github.com/smartworld/smartdesk/internal/room"
	"github.com/smartworld/smartdesk/internal/spreadsheet"
	"github.com/smartworld/smartdesk/internal/transport"
	"github.com/smartworld/smartdesk/internal/transport/rest"
)

var _ = Describe("RegisterAllRoutes", func() {
	var (
		router     *chi.Mux
		db         *sqlx.DB
		uploadsDir string
	)

	silent := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		var err error
		db, err = sqlx.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())
		db.SetMaxOpenConns(1)

		store := kvstore.New(db)
		Expect(store.EnsureSchema(context.Background())).To(Succeed())

		rooms := room.NewService(store, nil, silent)
		Expect(rooms.Init(context.Background())).To(Succeed())

		hash, err := auth.HashPassword("let-me-in", bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		tokens := auth.NewJWTTokenGenerator(
			"access-secret-access-secret-0123456789",
			"refresh-secret-refresh-secret-0123456",
			time.Minute, time.Hour)
		authService := auth.NewService(tokens, hash, silent)

		uploadsDir = GinkgoT().TempDir()
		Expect(os.MkdirAll(filepath.Join(uploadsDir, "images"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(uploadsDir, "images", "E001.png"), []byte("png"), 0o644)).To(Succeed())

		cfg := &internal.Config{
			Server: internal.ServerConfig{AllowedOrigins: "*"},
			Data:   internal.DataConfig{UploadsDir: uploadsDir},
			Observability: internal.ObservabilityConfig{
				Metrics: internal.MetricsConfig{Enabled: true, Path: "/metrics"},
			},
		}

		records := attendance.NewService(silent)
		records.Load([]spreadsheet.AttendanceRow{
			{ID: "att_0001", EmployeeID: "E001", EmployeeName: "Asha", Date: "2025-06-02", Status: "present"},
		})

		base := transport.NewBaseHandler(silent)
		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, db.DB, cfg, rest.Handlers{
			Auth:       auth.NewHandler(base, authService),
			RBAC:       auth.NewRBACAuthorization(silent),
			Rooms:      room.NewHandler(base, rooms),
			Attendance: attendance.NewHandler(base, records),
		}, silent)
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	login := func(body string) string {
		w := do(http.MethodPost, "/api/v1/auth/login", "", body)
		Expect(w.Code).To(Equal(http.StatusOK))
		var tokens auth.AuthTokens
		Expect(json.NewDecoder(w.Body).Decode(&tokens)).To(Succeed())
		return tokens.AccessToken
	}

	It("serves liveness and readiness without a token", func() {
		Expect(do(http.MethodGet, "/api/v1/ping", "", "").Code).To(Equal(http.StatusOK))

		w := do(http.MethodGet, "/api/v1/health", "", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var health rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&health)).To(Succeed())
		Expect(health.Status).To(Equal(rest.HealthHealthy))
		Expect(health.Components).To(HaveKey("database"))
	})

	It("echoes a trace id on every response", func() {
		w := do(http.MethodGet, "/api/v1/ping", "", "")
		Expect(w.Header().Get("X-Trace-ID")).NotTo(BeEmpty())
	})

	It("answers CORS preflight requests", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/meeting-rooms", nil)
		req.Header.Set("Origin", "http://intranet.local")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})

	It("requires a token for the API", func() {
		Expect(do(http.MethodGet, "/api/v1/meeting-rooms", "", "").Code).To(Equal(http.StatusUnauthorized))
		Expect(do(http.MethodGet, "/api/v1/meeting-rooms", "garbage", "").Code).To(Equal(http.StatusUnauthorized))
	})

	It("lets users read and book but keeps admin routes closed", func() {
		token := login(`{"role":"user"}`)

		w := do(http.MethodGet, "/api/v1/meeting-rooms", token, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var rooms room.RoomsResponse
		Expect(json.NewDecoder(w.Body).Decode(&rooms)).To(Succeed())
		Expect(rooms.Rooms).To(HaveLen(15))

		Expect(do(http.MethodPost, "/api/v1/meeting-rooms/reinitialize", token, "").Code).To(Equal(http.StatusForbidden))
		Expect(do(http.MethodDelete, "/api/v1/meeting-rooms/clear-all-bookings", token, "").Code).To(Equal(http.StatusForbidden))
		Expect(do(http.MethodGet, "/api/v1/attendance", token, "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodPut, "/api/v1/attendance/att_0001", token, `{"status":"late"}`).Code).To(Equal(http.StatusForbidden))

		me := do(http.MethodGet, "/api/v1/auth/me", token, "")
		Expect(me.Code).To(Equal(http.StatusOK))
		Expect(me.Body.String()).To(ContainSubstring(`"role":"user"`))
	})

	It("opens admin routes to an admin session", func() {
		Expect(do(http.MethodPost, "/api/v1/auth/login", "", `{"role":"admin","password":"nope"}`).Code).
			To(Equal(http.StatusUnauthorized))

		token := login(`{"role":"admin","password":"let-me-in"}`)
		Expect(do(http.MethodPost, "/api/v1/meeting-rooms/reinitialize", token, "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodDelete, "/api/v1/meeting-rooms/clear-all-bookings", token, "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodPut, "/api/v1/attendance/att_0001", token, `{"status":"late"}`).Code).To(Equal(http.StatusOK))
	})

	It("serves uploaded images and metrics", func() {
		w := do(http.MethodGet, "/api/uploads/images/E001.png", "", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("png"))

		Expect(do(http.MethodGet, "/api/v1/ping", "", "").Code).To(Equal(http.StatusOK))
		m := do(http.MethodGet, "/metrics", "", "")
		Expect(m.Code).To(Equal(http.StatusOK))
		Expect(m.Body.String()).To(ContainSubstring("smartdesk_http_request_duration_seconds"))
	})
})
