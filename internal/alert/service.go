package alert

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/core/common/validation"
	alertDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/alert"
	"github.com/smartworld/smartdesk/internal/core/events"
)

type RepositoryAPI interface {
	ListActive(ctx context.Context, audience string, now time.Time) ([]*alertDatamodel.Alert, error)
	ListAll(ctx context.Context) ([]*alertDatamodel.Alert, error)
	GetByID(ctx context.Context, id string) (*alertDatamodel.Alert, error)
	Create(ctx context.Context, alert *alertDatamodel.Alert) error
	Update(ctx context.Context, alert *alertDatamodel.Alert) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	bus    events.Publisher
	now    func() time.Time
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		now:    time.Now,
		logger: logger,
	}
}

// SetClock replaces the time source used for expiry and timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ListActive returns unexpired alerts visible to audience, newest first.
// "all" or an empty audience sees every audience's alerts.
func (s *Service) ListActive(ctx context.Context, audience string) ([]Alert, error) {
	if audience == AudienceAll {
		audience = ""
	}
	rows, err := s.repo.ListActive(ctx, audience, s.now())
	if err != nil {
		s.logger.Error("failed to list active alerts", "error", err)
		return nil, internal.NewInternalError("failed to list alerts", err)
	}
	return fromRows(rows), nil
}

// ListAll returns every alert including expired ones.
func (s *Service) ListAll(ctx context.Context) ([]Alert, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list alerts", "error", err)
		return nil, internal.NewInternalError("failed to list alerts", err)
	}
	return fromRows(rows), nil
}

func (s *Service) Create(ctx context.Context, a Alert) (*Alert, error) {
	if a.Title == "" {
		a.Title = DefaultTitle
	}
	if a.Type == "" {
		a.Type = TypeGeneral
	}
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	if a.TargetAudience == "" {
		a.TargetAudience = AudienceAll
	}
	if a.CreatedBy == "" {
		a.CreatedBy = DefaultCreator
	}
	if err := validate(&a); err != nil {
		return nil, err
	}

	now := s.now()
	a.ID = uuid.New().String()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.repo.Create(ctx, a.ToDataModel()); err != nil {
		s.logger.Error("failed to create alert", "error", err)
		return nil, internal.NewInternalError("failed to create alert", err)
	}

	s.logger.Info("alert created", "id", a.ID, "priority", a.Priority, "audience", a.TargetAudience)
	if s.bus != nil {
		if err := s.bus.Publish(ctx, events.NewAlertCreatedEvent(a.ID, a.Priority, a.TargetAudience)); err != nil {
			s.logger.Warn("failed to publish alert event", "error", err)
		}
	}
	return &a, nil
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (*Alert, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAlertNotFound
		}
		return nil, internal.NewInternalError("failed to load alert", err)
	}

	a := FromDataModel(row)
	p.apply(a)
	if err := validate(a); err != nil {
		return nil, err
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a.ToDataModel()); err != nil {
		s.logger.Error("failed to update alert", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to update alert", err)
	}
	s.logger.Info("alert updated", "id", id)
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete alert", "id", id, "error", err)
		return internal.NewInternalError("failed to delete alert", err)
	}
	if !deleted {
		return internal.ErrAlertNotFound
	}
	s.logger.Info("alert deleted", "id", id)
	return nil
}

// SeedDemo inserts the welcome alerts when the table is empty and reports
// how many were added.
func (s *Service) SeedDemo(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, internal.NewInternalError("failed to count alerts", err)
	}
	if n > 0 {
		return 0, nil
	}
	for _, a := range demoAlerts() {
		if _, err := s.Create(ctx, a); err != nil {
			return 0, err
		}
	}
	return len(demoAlerts()), nil
}

func demoAlerts() []Alert {
	return []Alert{
		{
			Title:     "Welcome to SmartWorld!",
			Message:   "Welcome to the SmartWorld Employee Management System. We are excited to have you on board!",
			Type:      TypeAnnouncement,
			Priority:  PriorityHigh,
			CreatedBy: "system",
		},
		{
			Title:     "System Updates",
			Message:   "New features have been added to the system. Check out the enhanced employee directory and meeting room booking system.",
			Type:      TypeSystem,
			Priority:  PriorityMedium,
			CreatedBy: "system",
		},
	}
}

func validate(a *Alert) error {
	v := validation.NewValidator()
	v.Field("message", a.Message).Required()
	v.Field("title", a.Title).MaxLength(200)
	v.Field("priority", a.Priority).OneOf(priorities...)
	v.Field("type", a.Type).OneOf(types...)
	v.Field("targetAudience", a.TargetAudience).OneOf(audiences...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func fromRows(rows []*alertDatamodel.Alert) []Alert {
	out := make([]Alert, 0, len(rows))
	for _, r := range rows {
		out = append(out, *FromDataModel(r))
	}
	return out
}
