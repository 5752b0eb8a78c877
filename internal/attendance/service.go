package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/core/common/validation"
	"github.com/smartworld/smartdesk/internal/spreadsheet"
)

type Service struct {
	mu          sync.RWMutex
	records     []Record
	seq         int
	placeholder bool
	now         func() time.Time
	logger      *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{now: time.Now, logger: logger}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Load replaces the records with rows read from the attendance log.
func (s *Service) Load(rows []spreadsheet.AttendanceRow) {
	now := s.now()
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, FromRow(row, now))
	}
	s.replace(records, false)
	s.logger.Info("attendance loaded", "records", len(records))
}

// LoadPlaceholder replaces the records with generated ones for people.
func (s *Service) LoadPlaceholder(people []Person) {
	records := Placeholder(people, s.now())
	s.replace(records, true)
	s.logger.Warn("attendance log unavailable; using placeholder records", "records", len(records))
}

func (s *Service) replace(records []Record, placeholder bool) {
	seq := 0
	for _, r := range records {
		if n := idNumber(r.ID); n > seq {
			seq = n
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.seq = seq
	s.placeholder = placeholder
}

// Search returns records whose employee name or id starts with query,
// ignoring case. An empty query returns everything.
func (s *Service) Search(query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if q == "" ||
			strings.HasPrefix(strings.ToLower(r.EmployeeName), q) ||
			strings.HasPrefix(strings.ToLower(r.EmployeeID), q) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// IsPlaceholder reports whether the current records were generated.
func (s *Service) IsPlaceholder() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.placeholder
}

// Create prepends a manually entered record.
func (s *Service) Create(ctx context.Context, r Record) (*Record, error) {
	if r.Status == "" {
		r.Status = StatusPresent
	}
	r.Status = strings.ToLower(r.Status)

	v := validation.NewValidator()
	v.Field("employeeId", r.EmployeeID).Required()
	v.Field("employeeName", r.EmployeeName).Required()
	v.Field("date", r.Date).Required().Date("2006-01-02")
	v.Field("status", r.Status).OneOf(statuses...)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if r.TotalHours == 0 && r.PunchIn != nil && r.PunchOut != nil {
		r.TotalHours = hoursBetween(*r.PunchIn, *r.PunchOut)
	}

	now := s.now()
	r.CreatedAt = now
	r.UpdatedAt = now

	s.mu.Lock()
	s.seq++
	r.ID = fmt.Sprintf("att_%04d", s.seq)
	s.records = append([]Record{r}, s.records...)
	s.mu.Unlock()

	s.logger.Info("attendance record created", "id", r.ID, "employee", r.EmployeeID, "date", r.Date)
	return &r, nil
}

// Update applies p to the record with the given id, typically a punch-out.
// Changes live until the next load replaces the records.
func (s *Service) Update(ctx context.Context, id string, p Patch) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.records {
		if s.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, internal.ErrRecordNotFound
	}

	r := s.records[idx]
	p.apply(&r)

	v := validation.NewValidator()
	v.Field("status", r.Status).OneOf(statuses...)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	r.UpdatedAt = s.now()
	s.records[idx] = r

	s.logger.Info("attendance record updated", "id", id, "employee", r.EmployeeID, "totalHours", r.TotalHours)
	return &r, nil
}

func idNumber(id string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "att_"))
	if err != nil {
		return 0
	}
	return n
}

func hoursBetween(in, out string) float64 {
	a, err1 := time.Parse(time.RFC3339, in)
	b, err2 := time.Parse(time.RFC3339, out)
	if err1 != nil || err2 != nil || !b.After(a) {
		return 0
	}
	return float64(b.Sub(a).Round(36*time.Second)) / float64(time.Hour)
}
