package portal_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/alert"
	alertPostgres "github.com/smartworld/smartdesk/internal/alert/postgres"
	"github.com/smartworld/smartdesk/internal/attendance"
	alertDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/alert"
	employeeDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/employee"
	hierarchyDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/hierarchy"
	policyDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/policy"
	"github.com/smartworld/smartdesk/internal/directory"
	directoryPostgres "github.com/smartworld/smartdesk/internal/directory/postgres"
	"github.com/smartworld/smartdesk/internal/hierarchy"
	hierarchyPostgres "github.com/smartworld/smartdesk/internal/hierarchy/postgres"
	"github.com/smartworld/smartdesk/internal/kvstore"
	"github.com/smartworld/smartdesk/internal/policy"
	policyPostgres "github.com/smartworld/smartdesk/internal/policy/postgres"
	"github.com/smartworld/smartdesk/internal/portal"
	"github.com/smartworld/smartdesk/internal/room"
	"github.com/smartworld/smartdesk/internal/spreadsheet"
	"github.com/smartworld/smartdesk/internal/transport"
)

func TestPortal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Portal Suite")
}

// fakeSource implements spreadsheet.Source for testing
type fakeSource struct {
	roster        []spreadsheet.RosterRow
	attendance    []spreadsheet.AttendanceRow
	rosterErr     error
	attendanceErr error
}

func (f *fakeSource) Roster(ctx context.Context) ([]spreadsheet.RosterRow, error) {
	return f.roster, f.rosterErr
}

func (f *fakeSource) Attendance(ctx context.Context) ([]spreadsheet.AttendanceRow, error) {
	return f.attendance, f.attendanceErr
}

func rosterRows() []spreadsheet.RosterRow {
	mk := func(id, name, dept, loc string) spreadsheet.RosterRow {
		return spreadsheet.RosterRow{EmpID: id, Name: name, Department: dept, Location: loc, ProfileImage: spreadsheet.DefaultProfileImage}
	}
	return []spreadsheet.RosterRow{
		mk("1000", "Vikram", "Leadership", "IFC"),
		mk("1001", "Asha", "Finance", "IFC"),
		mk("1002", "Ravi", "Finance", "Gurugram"),
		mk("1003", "Meera", "IT", "Gurugram"),
		mk("1004", "Kiran", "IT", "Noida"),
		mk("1005", "Dev", "Sales", "Noida"),
	}
}

var _ = Describe("Portal", func() {
	var (
		p      *portal.Portal
		source *fakeSource
		ctx    context.Context
		logger *slog.Logger
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, _ := db.DB()
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(
			&employeeDatamodel.EmployeeImage{},
			&hierarchyDatamodel.HierarchyEdge{},
			&alertDatamodel.Alert{},
			&policyDatamodel.Policy{},
		)).To(Succeed())

		kvDB := sqlx.NewDb(sqlDB, "sqlite3")
		kv := kvstore.New(kvDB)
		Expect(kv.EnsureSchema(ctx)).To(Succeed())

		source = &fakeSource{
			roster: rosterRows(),
			attendance: []spreadsheet.AttendanceRow{
				{ID: "att_0001", EmployeeID: "1000", EmployeeName: "Vikram", Date: "2025-06-02", Status: "present"},
			},
		}

		p = portal.New(portal.Portal{
			Directory:  directory.NewService(directoryPostgres.NewImageRepository(db), GinkgoT().TempDir(), logger),
			Hierarchy:  hierarchy.NewService(hierarchyPostgres.NewEdgeRepository(db), logger),
			Rooms:      room.NewService(kv, nil, logger),
			Alerts:     alert.NewService(alertPostgres.NewAlertRepository(db), nil, logger),
			Attendance: attendance.NewService(logger),
			Policies:   policy.NewService(policyPostgres.NewPolicyRepository(db), logger),
		}, source, nil, logger)

		Expect(p.Init(ctx)).To(Succeed())
	})

	It("seeds demo alerts and sample policies on init", func() {
		alerts, err := p.Alerts.ListAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(alerts).To(HaveLen(2))

		policies, err := p.Policies.List(ctx, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(policies).To(HaveLen(2))
	})

	It("loads the roster and attendance and reports stats", func() {
		Expect(p.Load(ctx)).To(Succeed())

		stats := p.Stats()
		Expect(stats.Employees).To(Equal(6))
		Expect(stats.Departments).To(Equal(4))
		Expect(stats.AttendanceRecords).To(Equal(1))
		Expect(stats.PlaceholderData).To(BeFalse())
		Expect(stats.HierarchyRelations).To(BeZero())
	})

	It("merges meeting-room locations into the directory locations", func() {
		Expect(p.Load(ctx)).To(Succeed())

		locations := p.Directory.Locations()
		Expect(locations[0]).To(Equal(directory.AllLocations))
		Expect(locations[1:4]).To(Equal([]string{"IFC", "Gurugram", "Noida"}))
		Expect(locations).To(ContainElements("Central Office 75", "Office 75", "Project Office"))
		Expect(p.Stats().Locations).To(Equal(len(locations) - 1))
	})

	It("falls back to placeholder attendance when the log cannot be read", func() {
		source.attendanceErr = internal.NewLoadFailure("missing file", nil)
		Expect(p.Load(ctx)).To(Succeed())

		Expect(p.Attendance.IsPlaceholder()).To(BeTrue())
		for _, r := range p.Attendance.Search("") {
			Expect(r.EmployeeID).NotTo(Equal("1005"))
		}
	})

	It("keeps the current directory when a reload fails", func() {
		Expect(p.Load(ctx)).To(Succeed())

		source.rosterErr = errors.New("disk unplugged")
		_, err := p.Reload(ctx)
		Expect(err).To(MatchError(internal.ErrLoadFailure))
		Expect(p.Directory.Count()).To(Equal(6))
	})

	It("resolves hierarchy members through the directory", func() {
		Expect(p.Load(ctx)).To(Succeed())
		_, err := p.Hierarchy.AddEdge(ctx, "1001", "1000")
		Expect(err).NotTo(HaveOccurred())

		roots := p.Hierarchy.BuildTree(p.Lookup)
		Expect(roots).To(HaveLen(1))
		Expect(roots[0].Name).To(Equal("Vikram"))
		Expect(roots[0].Department).To(Equal("Leadership"))
		Expect(roots[0].Children[0].Name).To(Equal("Asha"))
	})

	Describe("Handler", func() {
		It("serves stats and refreshes the roster", func() {
			Expect(p.Load(ctx)).To(Succeed())
			h := portal.NewHandler(transport.NewBaseHandler(logger), p)

			source.roster = append(rosterRows(), spreadsheet.RosterRow{EmpID: "1006", Name: "Nisha", Department: "HR", Location: "IFC"})
			w := httptest.NewRecorder()
			h.RefreshRoster(w, httptest.NewRequest(http.MethodPost, "/refresh-roster", bytes.NewBuffer(nil)))
			Expect(w.Code).To(Equal(http.StatusOK))
			var resp portal.RefreshResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Stats.Employees).To(Equal(7))

			w = httptest.NewRecorder()
			h.GetStats(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
			var stats portal.Stats
			Expect(json.NewDecoder(w.Body).Decode(&stats)).To(Succeed())
			Expect(stats.Departments).To(Equal(5))
		})

		It("reports a failed refresh as a load failure", func() {
			h := portal.NewHandler(transport.NewBaseHandler(logger), p)
			source.rosterErr = errors.New("boom")
			w := httptest.NewRecorder()
			h.RefreshRoster(w, httptest.NewRequest(http.MethodPost, "/refresh-roster", nil))
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
