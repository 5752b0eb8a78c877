package directory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/smartworld/smartdesk/internal"
	employeeDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/employee"
	"github.com/smartworld/smartdesk/internal/spreadsheet"
)

type RepositoryAPI interface {
	ListImages(ctx context.Context) ([]*employeeDatamodel.EmployeeImage, error)
	UpsertImage(ctx context.Context, image *employeeDatamodel.EmployeeImage) error
}

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Service is the in-memory employee directory. Reads take a shared lock;
// loads and image updates take the exclusive one.
type Service struct {
	mu             sync.RWMutex
	employees      []*Employee
	byID           map[string]*Employee
	departments    []string
	locations      []string
	extraLocations []string

	repo       RepositoryAPI
	uploadsDir string
	now        func() time.Time
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, uploadsDir string, logger *slog.Logger) *Service {
	return &Service{
		byID:       make(map[string]*Employee),
		repo:       repo,
		uploadsDir: uploadsDir,
		now:        time.Now,
		logger:     logger,
	}
}

// Load replaces the directory with rows, then re-applies stored image overrides.
func (s *Service) Load(ctx context.Context, rows []spreadsheet.RosterRow) error {
	employees := make([]*Employee, 0, len(rows))
	byID := make(map[string]*Employee, len(rows))
	deptSeen := make(map[string]struct{})
	locSeen := make(map[string]struct{})
	var departments, locations []string

	for _, row := range rows {
		if row.EmpID == "" {
			continue
		}
		e := FromRosterRow(row)
		if _, dup := byID[e.ID]; dup {
			s.logger.Warn("duplicate employee id in roster; keeping first", "id", e.ID)
			continue
		}
		employees = append(employees, &e)
		byID[e.ID] = &e
		departments = appendUnique(departments, deptSeen, e.Department)
		locations = appendUnique(locations, locSeen, e.Location)
	}

	if s.repo != nil {
		images, err := s.repo.ListImages(ctx)
		if err != nil {
			s.logger.Error("failed to load profile image overrides", "error", err)
			return internal.NewInternalError("failed to load profile images", err)
		}
		for _, img := range images {
			if e, ok := byID[img.EmployeeID]; ok {
				e.ProfileImage = img.ProfileImage
			}
		}
	}

	s.mu.Lock()
	s.employees = employees
	s.byID = byID
	s.departments = departments
	s.locations = locations
	s.mu.Unlock()

	s.logger.Info("directory loaded", "employees", len(employees), "departments", len(departments), "locations", len(locations))
	return nil
}

// Search returns employees whose name, id, department, location, grade or
// mobile starts with query, in roster order. An empty query returns everyone.
func (s *Service) Search(query string) []Employee {
	return s.List(Filter{Search: query})
}

func (s *Service) List(f Filter) []Employee {
	dept, loc := f.department(), f.location()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if dept != "" && e.Department != dept {
			continue
		}
		if loc != "" && e.Location != loc {
			continue
		}
		if !matchesPrefix(e, f.Search) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

func (s *Service) Get(id string) (Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return Employee{}, false
	}
	return *e, true
}

func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees)
}

// Departments lists distinct departments behind the "All Departments" sentinel.
func (s *Service) Departments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.departments)+1)
	out = append(out, AllDepartments)
	return append(out, s.departments...)
}

// Locations lists roster locations, then any added locations, behind the
// "All Locations" sentinel.
func (s *Service) Locations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(s.locations)+len(s.extraLocations))
	out := []string{AllLocations}
	for _, l := range s.locations {
		out = appendUnique(out, seen, l)
	}
	for _, l := range s.extraLocations {
		out = appendUnique(out, seen, l)
	}
	return out
}

// AddLocations registers locations that do not come from the roster, such
// as meeting-room sites. They survive reloads.
func (s *Service) AddLocations(locations ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(s.extraLocations))
	for _, l := range s.extraLocations {
		seen[l] = struct{}{}
	}
	for _, l := range locations {
		s.extraLocations = appendUnique(s.extraLocations, seen, strings.TrimSpace(l))
	}
}

// UpdateImage replaces an employee's profile image reference.
func (s *Service) UpdateImage(ctx context.Context, id, image string) (*Employee, error) {
	if _, ok := s.Get(id); !ok {
		return nil, internal.ErrEmployeeNotFound
	}

	if s.repo != nil {
		err := s.repo.UpsertImage(ctx, &employeeDatamodel.EmployeeImage{
			EmployeeID:   id,
			ProfileImage: image,
			UpdatedAt:    s.now(),
		})
		if err != nil {
			s.logger.Error("failed to persist profile image", "id", id, "error", err)
			return nil, internal.NewInternalError("failed to update profile image", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		// roster reloaded without this employee while we were writing
		return nil, internal.ErrEmployeeNotFound
	}
	e.ProfileImage = image
	out := *e

	s.logger.Info("profile image updated", "id", id)
	return &out, nil
}

// UploadImage stores the image under <uploads>/images/<id><ext> and points
// the employee's profile image at it.
func (s *Service) UploadImage(ctx context.Context, id, filename string, r io.Reader) (*Employee, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return nil, internal.NewValidationFieldError("image", "only image files are allowed", internal.ErrCodeValidationFailed)
	}
	if _, ok := s.Get(id); !ok {
		return nil, internal.ErrEmployeeNotFound
	}

	dir := filepath.Join(s.uploadsDir, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, internal.NewInternalError("failed to prepare upload directory", err)
	}

	name := unsafeFileChars.ReplaceAllString(id, "_") + ext
	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return nil, internal.NewInternalError("failed to store image", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, internal.NewInternalError("failed to store image", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, internal.NewInternalError("failed to store image", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return nil, internal.NewInternalError("failed to store image", err)
	}

	return s.UpdateImage(ctx, id, fmt.Sprintf("/api/uploads/images/%s", name))
}
