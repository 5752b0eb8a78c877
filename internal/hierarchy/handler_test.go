package hierarchy_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartworld/smartdesk/internal/hierarchy"
	"github.com/smartworld/smartdesk/internal/transport"
)

var _ = Describe("Hierarchy Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := hierarchy.NewService(NewMockRepository(), logger)
		handler := hierarchy.NewHandler(transport.NewBaseHandler(logger), service, lookupFrom(map[string]string{"E001": "Vikram"}))

		router = chi.NewRouter()
		router.Get("/hierarchy", handler.ListEdges)
		router.Post("/hierarchy", handler.AddEdge)
		router.Delete("/hierarchy", handler.Clear)
		router.Delete("/hierarchy/{employeeId}", handler.RemoveEdge)
		router.Get("/hierarchy/tree", handler.GetTree)
	})

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hierarchy", bytes.NewBufferString(body)))
		return w
	}

	It("maps domain errors to status codes", func() {
		Expect(post(`{"employeeId":"E002","reportsTo":"E001"}`).Code).To(Equal(http.StatusCreated))
		Expect(post(`{"employeeId":"E002","reportsTo":"E003"}`).Code).To(Equal(http.StatusConflict))
		Expect(post(`{"employeeId":"E004","reportsTo":"E004"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(post(`not json`).Code).To(Equal(http.StatusBadRequest))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/hierarchy/E999", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("renders the tree", func() {
		post(`{"employeeId":"E002","reportsTo":"E001"}`)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hierarchy/tree", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp hierarchy.TreeResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Roots).To(HaveLen(1))
		Expect(resp.Roots[0].Name).To(Equal("Vikram"))
		Expect(resp.Roots[0].Children[0].Name).To(Equal(hierarchy.UnknownName))
	})

	It("clears all relationships", func() {
		post(`{"employeeId":"E002","reportsTo":"E001"}`)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/hierarchy", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp hierarchy.ClearResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Removed).To(Equal(1))
	})
})
