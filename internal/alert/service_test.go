package alert_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/alert"
	alertPostgres "github.com/smartworld/smartdesk/internal/alert/postgres"
	alertDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/alert"
	"github.com/smartworld/smartdesk/internal/core/events"
)

func TestAlert(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Alert Suite")
}

var silentLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	Expect(err).NotTo(HaveOccurred())
	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	sqlDB.SetMaxOpenConns(1)
	Expect(db.AutoMigrate(&alertDatamodel.Alert{})).To(Succeed())
	return db
}

// failingRepository wraps a real repository and fails every write.
type failingRepository struct {
	alert.RepositoryAPI
}

func (f failingRepository) Create(ctx context.Context, a *alertDatamodel.Alert) error {
	return errors.New("write failed")
}

var _ = Describe("Alert Service", func() {
	var (
		service *alert.Service
		repo    alert.RepositoryAPI
		now     time.Time
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = alertPostgres.NewAlertRepository(newTestDB())
		service = alert.NewService(repo, nil, silentLogger)
		now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		service.SetClock(func() time.Time { return now })
	})

	Describe("Create", func() {
		It("fills in the defaults", func() {
			a, err := service.Create(ctx, alert.Alert{Message: "Fire drill at noon"})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).NotTo(BeEmpty())
			Expect(a.Title).To(Equal(alert.DefaultTitle))
			Expect(a.Priority).To(Equal(alert.PriorityMedium))
			Expect(a.Type).To(Equal(alert.TypeGeneral))
			Expect(a.TargetAudience).To(Equal(alert.AudienceAll))
			Expect(a.CreatedBy).To(Equal(alert.DefaultCreator))
			Expect(a.CreatedAt).To(Equal(now))
		})

		It("rejects values outside the allowed sets", func() {
			_, err := service.Create(ctx, alert.Alert{Message: "x", Priority: "critical"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))

			_, err = service.Create(ctx, alert.Alert{Message: "x", TargetAudience: "everyone"})
			Expect(err).To(HaveOccurred())
		})

		It("requires a message", func() {
			_, err := service.Create(ctx, alert.Alert{Title: "Empty"})
			Expect(err).To(HaveOccurred())
		})

		It("publishes an alert.created event", func() {
			bus := events.NewEventBus(silentLogger)
			var seen atomic.Int32
			bus.Subscribe(events.EventTypeAlertCreated, func(_ context.Context, e events.Event) error {
				if ev, ok := e.(*events.AlertCreatedEvent); ok && ev.Priority == alert.PriorityUrgent {
					seen.Add(1)
				}
				return nil
			})
			service = alert.NewService(repo, bus, silentLogger)

			_, err := service.Create(ctx, alert.Alert{Message: "Server down", Priority: alert.PriorityUrgent})
			Expect(err).NotTo(HaveOccurred())
			Expect(bus.Drain(ctx)).To(Succeed())
			Expect(seen.Load()).To(Equal(int32(1)))
		})

		It("surfaces repository failures as internal errors", func() {
			service = alert.NewService(failingRepository{repo}, nil, silentLogger)
			_, err := service.Create(ctx, alert.Alert{Message: "x"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("ListActive and ListAll", func() {
		BeforeEach(func() {
			past := now.Add(-time.Hour)
			future := now.Add(time.Hour)

			_, err := service.Create(ctx, alert.Alert{Title: "expired", Message: "old", ExpiresAt: &past})
			Expect(err).NotTo(HaveOccurred())
			now = now.Add(time.Minute)
			_, err = service.Create(ctx, alert.Alert{Title: "admins", Message: "m", TargetAudience: alert.AudienceAdmin, ExpiresAt: &future})
			Expect(err).NotTo(HaveOccurred())
			now = now.Add(time.Minute)
			_, err = service.Create(ctx, alert.Alert{Title: "users", Message: "m", TargetAudience: alert.AudienceUser})
			Expect(err).NotTo(HaveOccurred())
			now = now.Add(time.Minute)
			_, err = service.Create(ctx, alert.Alert{Title: "everyone", Message: "m"})
			Expect(err).NotTo(HaveOccurred())
		})

		titles := func(alerts []alert.Alert) []string {
			out := make([]string, len(alerts))
			for i, a := range alerts {
				out[i] = a.Title
			}
			return out
		}

		It("hides expired alerts and returns newest first", func() {
			active, err := service.ListActive(ctx, alert.AudienceAll)
			Expect(err).NotTo(HaveOccurred())
			Expect(titles(active)).To(Equal([]string{"everyone", "users", "admins"}))
		})

		It("narrows by audience while keeping alerts for all", func() {
			active, _ := service.ListActive(ctx, alert.AudienceUser)
			Expect(titles(active)).To(Equal([]string{"everyone", "users"}))

			active, _ = service.ListActive(ctx, "")
			Expect(active).To(HaveLen(3))
		})

		It("still returns expired alerts from ListAll", func() {
			all, err := service.ListAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(4))
			Expect(titles(all)).To(ContainElement("expired"))
		})

		It("expires alerts as the clock moves", func() {
			now = now.Add(2 * time.Hour)
			active, _ := service.ListActive(ctx, alert.AudienceAdmin)
			Expect(titles(active)).To(Equal([]string{"everyone"}))
		})
	})

	Describe("Update", func() {
		It("patches only supplied fields", func() {
			a, _ := service.Create(ctx, alert.Alert{Title: "Maintenance", Message: "Tonight", Priority: alert.PriorityLow})
			high := alert.PriorityHigh

			now = now.Add(time.Hour)
			updated, err := service.Update(ctx, a.ID, alert.Patch{Priority: &high})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Priority).To(Equal(alert.PriorityHigh))
			Expect(updated.Title).To(Equal("Maintenance"))
			Expect(updated.UpdatedAt).To(Equal(now))
		})

		It("can clear an expiry", func() {
			past := now.Add(-time.Minute)
			a, _ := service.Create(ctx, alert.Alert{Message: "m", ExpiresAt: &past})

			_, err := service.Update(ctx, a.ID, alert.Patch{ClearExpiry: true})
			Expect(err).NotTo(HaveOccurred())
			active, _ := service.ListActive(ctx, "")
			Expect(active).To(HaveLen(1))
		})

		It("validates the patched alert", func() {
			a, _ := service.Create(ctx, alert.Alert{Message: "m"})
			bad := "sometimes"
			_, err := service.Update(ctx, a.ID, alert.Patch{Priority: &bad})
			Expect(err).To(HaveOccurred())
		})

		It("returns NotFound for unknown ids", func() {
			_, err := service.Update(ctx, "missing", alert.Patch{})
			Expect(err).To(MatchError(internal.ErrAlertNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the alert and then reports NotFound", func() {
			a, _ := service.Create(ctx, alert.Alert{Message: "m"})
			Expect(service.Delete(ctx, a.ID)).To(Succeed())
			Expect(service.Delete(ctx, a.ID)).To(MatchError(internal.ErrAlertNotFound))
		})
	})

	Describe("SeedDemo", func() {
		It("seeds only an empty table", func() {
			n, err := service.SeedDemo(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))

			n, err = service.SeedDemo(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())

			all, _ := service.ListAll(ctx)
			Expect(all).To(HaveLen(2))
		})
	})
})
