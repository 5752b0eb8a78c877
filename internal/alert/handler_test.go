package alert_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/alert"
	alertPostgres "github.com/smartworld/smartdesk/internal/alert/postgres"
	"github.com/smartworld/smartdesk/internal/transport"
)

var _ = Describe("Alert Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		service := alert.NewService(alertPostgres.NewAlertRepository(newTestDB()), nil, silentLogger)
		handler := alert.NewHandler(transport.NewBaseHandler(silentLogger), service)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithRole(r.Context(), "admin")))
			})
		})
		router.Get("/alerts", handler.ListActive)
		router.Get("/alerts/all", handler.ListAll)
		router.Post("/alerts", handler.Create)
		router.Put("/alerts/{id}", handler.Update)
		router.Delete("/alerts/{id}", handler.Delete)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
		return w
	}

	It("creates, updates and deletes an alert", func() {
		w := do(http.MethodPost, "/alerts", `{"title":"Heads up","message":"Lift maintenance","targetAudience":"user"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created alert.AlertResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Alert.CreatedBy).To(Equal("admin"))

		w = do(http.MethodPut, "/alerts/"+created.Alert.ID, `{"priority":"urgent"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/alerts?target_audience=admin", "")
		var listed alert.AlertsResponse
		Expect(json.NewDecoder(w.Body).Decode(&listed)).To(Succeed())
		Expect(listed.Total).To(BeZero())

		Expect(do(http.MethodDelete, "/alerts/"+created.Alert.ID, "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodDelete, "/alerts/"+created.Alert.ID, "").Code).To(Equal(http.StatusNotFound))
	})

	It("rejects an invalid expiry on update", func() {
		w := do(http.MethodPost, "/alerts", `{"message":"m"}`)
		var created alert.AlertResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		Expect(do(http.MethodPut, "/alerts/"+created.Alert.ID, `{"expiresAt":"soon"}`).Code).To(Equal(http.StatusBadRequest))
	})

	It("lists every alert for admins", func() {
		do(http.MethodPost, "/alerts", `{"message":"one","expiresAt":"2000-01-01T00:00:00Z"}`)
		w := do(http.MethodGet, "/alerts/all", "")
		var listed alert.AlertsResponse
		Expect(json.NewDecoder(w.Body).Decode(&listed)).To(Succeed())
		Expect(listed.Total).To(Equal(1))
	})
})
