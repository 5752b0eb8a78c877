// Package metrics holds the Prometheus collectors for the portal. All of them
// register against Registry rather than the global default registerer.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartworld/smartdesk/internal/core/events"
)

// Registry is the custom prometheus registry for the portal.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// BookingsCreated counts successful room bookings.
var BookingsCreated = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "smartdesk",
	Subsystem: "rooms",
	Name:      "bookings_created_total",
	Help:      "Number of meeting-room bookings created",
})

// BookingsRejected counts refused bookings by error code.
var BookingsRejected = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "smartdesk",
	Subsystem: "rooms",
	Name:      "bookings_rejected_total",
	Help:      "Number of meeting-room booking attempts rejected, by reason",
}, []string{"reason"})

var BookingsCancelled = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "smartdesk",
	Subsystem: "rooms",
	Name:      "bookings_cancelled_total",
	Help:      "Number of meeting-room bookings cancelled",
})

// RoomsOccupied is refreshed by the room store after every state change.
var RoomsOccupied = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "smartdesk",
	Subsystem: "rooms",
	Name:      "occupied",
	Help:      "Meeting rooms currently occupied",
})

var AlertsCreated = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "smartdesk",
	Subsystem: "alerts",
	Name:      "created_total",
	Help:      "Alerts created, by priority",
}, []string{"priority"})

var RosterLoads = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "smartdesk",
	Subsystem: "directory",
	Name:      "roster_loads_total",
	Help:      "Roster load attempts, by result",
}, []string{"result"})

var EmployeesLoaded = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "smartdesk",
	Subsystem: "directory",
	Name:      "employees",
	Help:      "Employees in the directory after the last successful load",
})

var HTTPRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "smartdesk",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route pattern and status",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Subscribe wires the counters that are driven by domain events.
func Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeBookingCreated, func(_ context.Context, _ events.Event) error {
		BookingsCreated.Inc()
		return nil
	})
	bus.Subscribe(events.EventTypeBookingCancelled, func(_ context.Context, _ events.Event) error {
		BookingsCancelled.Inc()
		return nil
	})
	bus.Subscribe(events.EventTypeAlertCreated, func(_ context.Context, e events.Event) error {
		if ev, ok := e.(*events.AlertCreatedEvent); ok {
			AlertsCreated.WithLabelValues(ev.Priority).Inc()
		}
		return nil
	})
	bus.Subscribe(events.EventTypeRosterReloaded, func(_ context.Context, e events.Event) error {
		ev, ok := e.(*events.RosterReloadedEvent)
		if !ok {
			return nil
		}
		if ev.Succeeded {
			RosterLoads.WithLabelValues("success").Inc()
			EmployeesLoaded.Set(float64(ev.Employees))
		} else {
			RosterLoads.WithLabelValues("failure").Inc()
		}
		return nil
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request latency keyed by the matched chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		HTTPRequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
