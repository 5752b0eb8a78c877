package directory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	employeeDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/employee"
	"github.com/smartworld/smartdesk/internal/directory"
	directoryPostgres "github.com/smartworld/smartdesk/internal/directory/postgres"
	"github.com/smartworld/smartdesk/internal/transport"
)

var _ = Describe("Directory Handler Integration", func() {
	var (
		db      *gorm.DB
		service *directory.Service
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&employeeDatamodel.EmployeeImage{})).To(Succeed())

		service = directory.NewService(directoryPostgres.NewImageRepository(db), GinkgoT().TempDir(), slogger)
		Expect(service.Load(context.Background(), sampleRoster())).To(Succeed())

		handler := directory.NewHandler(transport.NewBaseHandler(slogger), service)
		router = chi.NewRouter()
		router.Get("/employees", handler.ListEmployees)
		router.Get("/employees/{id}", handler.GetEmployee)
		router.Put("/employees/{id}/image", handler.UpdateImage)
		router.Post("/employees/{id}/upload-image", handler.UploadImage)
		router.Get("/departments", handler.GetDepartments)
		router.Get("/locations", handler.GetLocations)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("lists employees filtered by query parameters", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/employees?search=as&department=Finance", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp directory.EmployeesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Total).To(Equal(2))
		Expect(ids(resp.Employees)).To(Equal([]string{"1001", "2001"}))
	})

	It("returns 404 for an unknown employee", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/employees/9999", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("EMPLOYEE_NOT_FOUND"))
	})

	It("updates the profile image and persists it", func() {
		body := bytes.NewBufferString(`{"profileImage":"https://cdn.test/ravi.jpg"}`)
		w := serve(httptest.NewRequest(http.MethodPut, "/employees/1002/image", body))
		Expect(w.Code).To(Equal(http.StatusOK))

		var stored employeeDatamodel.EmployeeImage
		Expect(db.First(&stored, "employee_id = ?", "1002").Error).To(Succeed())
		Expect(stored.ProfileImage).To(Equal("https://cdn.test/ravi.jpg"))

		body = bytes.NewBufferString(`{"profileImage":"https://cdn.test/ravi-2.jpg"}`)
		w = serve(httptest.NewRequest(http.MethodPut, "/employees/1002/image", body))
		Expect(w.Code).To(Equal(http.StatusOK))
		var count int64
		db.Model(&employeeDatamodel.EmployeeImage{}).Count(&count)
		Expect(count).To(Equal(int64(1)))
	})

	It("rejects an empty image reference", func() {
		w := serve(httptest.NewRequest(http.MethodPut, "/employees/1002/image", bytes.NewBufferString(`{}`)))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("accepts a multipart image upload", func() {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("image", "face.jpg")
		Expect(err).NotTo(HaveOccurred())
		_, _ = part.Write([]byte("jpeg-bytes"))
		Expect(mw.Close()).To(Succeed())

		req := httptest.NewRequest(http.MethodPost, "/employees/1001/upload-image", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := serve(req)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp directory.ImageResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.ImageURL).To(Equal("/api/uploads/images/1001.jpg"))
	})

	It("serves departments and locations with sentinels first", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/departments", nil))
		var deps directory.DepartmentsResponse
		Expect(json.NewDecoder(w.Body).Decode(&deps)).To(Succeed())
		Expect(deps.Departments[0]).To(Equal(directory.AllDepartments))

		w = serve(httptest.NewRequest(http.MethodGet, "/locations", nil))
		var locs directory.LocationsResponse
		Expect(json.NewDecoder(w.Body).Decode(&locs)).To(Succeed())
		Expect(locs.Locations).To(Equal([]string{"All Locations", "IFC", "Noida"}))
	})
})
