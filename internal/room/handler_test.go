package room_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartworld/smartdesk/internal/room"
	"github.com/smartworld/smartdesk/internal/transport"
)

var _ = Describe("Room Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		now := time.Now()
		service := room.NewService(NewMockStore(), nil, silentLogger, room.WithClock(func() time.Time { return now }))
		Expect(service.Init(context.Background())).To(Succeed())
		handler := room.NewHandler(transport.NewBaseHandler(silentLogger), service)

		router = chi.NewRouter()
		router.Get("/meeting-rooms", handler.ListRooms)
		router.Delete("/meeting-rooms/clear-all-bookings", handler.ClearAll)
		router.Post("/meeting-rooms/reinitialize", handler.Reinitialize)
		router.Post("/meeting-rooms/{id}/book", handler.Book)
		router.Delete("/meeting-rooms/{id}/booking", handler.Cancel)
		router.Delete("/meeting-rooms/{id}/booking/{bookingId}", handler.Cancel)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
		return w
	}

	bookBody := func(start, end time.Time) string {
		return `{"employeeId":"E001","employeeName":"Vikram","startTime":"` + start.Format(time.RFC3339) +
			`","endTime":"` + end.Format(time.RFC3339) + `","purpose":"sync"}`
	}

	It("books, rejects a double booking, and cancels", func() {
		start := time.Now().Add(time.Hour)
		end := start.Add(time.Hour)

		w := do(http.MethodPost, "/meeting-rooms/ifc-14-009/book", bookBody(start, end))
		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp room.BookingResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())

		Expect(do(http.MethodPost, "/meeting-rooms/ifc-14-009/book", bookBody(start, end)).Code).To(Equal(http.StatusConflict))
		Expect(do(http.MethodDelete, "/meeting-rooms/ifc-14-009/booking/other", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodDelete, "/meeting-rooms/ifc-14-009/booking/"+resp.Booking.ID, "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodDelete, "/meeting-rooms/ifc-14-009/booking", "").Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects malformed times", func() {
		w := do(http.MethodPost, "/meeting-rooms/ifc-14-009/book", `{"employeeId":"E1","startTime":"tomorrow","endTime":"later"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("filters the room list", func() {
		w := do(http.MethodGet, "/meeting-rooms?location=IFC&floor=14th%20Floor", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp room.RoomsResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Total).To(Equal(9))
	})

	It("clears all bookings", func() {
		w := do(http.MethodDelete, "/meeting-rooms/clear-all-bookings", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp room.ClearAllResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.RoomsUpdated).To(Equal(15))
	})
})
