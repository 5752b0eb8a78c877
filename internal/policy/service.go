package policy

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/core/common/validation"
	policyDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/policy"
)

type RepositoryAPI interface {
	List(ctx context.Context, category string) ([]*policyDatamodel.Policy, error)
	GetByID(ctx context.Context, id string) (*policyDatamodel.Policy, error)
	Create(ctx context.Context, p *policyDatamodel.Policy) error
	Update(ctx context.Context, p *policyDatamodel.Policy) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	now    func() time.Time
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, now: time.Now, logger: logger}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// List returns policies newest first, optionally limited to one category.
func (s *Service) List(ctx context.Context, category string) ([]Policy, error) {
	rows, err := s.repo.List(ctx, category)
	if err != nil {
		s.logger.Error("failed to list policies", "error", err)
		return nil, internal.NewInternalError("failed to list policies", err)
	}
	out := make([]Policy, 0, len(rows))
	for _, r := range rows {
		out = append(out, *FromDataModel(r))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, p Policy) (*Policy, error) {
	if p.Version == "" {
		p.Version = DefaultVersion
	}
	if p.Category == "" {
		p.Category = CategoryOther
	}

	if err := validate(&p); err != nil {
		return nil, err
	}

	now := s.now()
	if p.ID == "" {
		p.ID = "policy_" + uuid.New().String()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p.ToDataModel()); err != nil {
		s.logger.Error("failed to create policy", "error", err)
		return nil, internal.NewInternalError("failed to create policy", err)
	}
	s.logger.Info("policy created", "id", p.ID, "category", p.Category)
	return &p, nil
}

// Update applies p to the stored policy; CreatedAt and Author are kept.
func (s *Service) Update(ctx context.Context, id string, p Patch) (*Policy, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrPolicyNotFound
		}
		return nil, internal.NewInternalError("failed to load policy", err)
	}

	pol := FromDataModel(row)
	p.apply(pol)
	if err := validate(pol); err != nil {
		return nil, err
	}
	pol.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, pol.ToDataModel()); err != nil {
		s.logger.Error("failed to update policy", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to update policy", err)
	}
	s.logger.Info("policy updated", "id", id, "version", pol.Version)
	return pol, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete policy", "id", id, "error", err)
		return internal.NewInternalError("failed to delete policy", err)
	}
	if !deleted {
		return internal.ErrPolicyNotFound
	}
	s.logger.Info("policy deleted", "id", id)
	return nil
}

// SeedSamples inserts the sample policies into an empty table.
func (s *Service) SeedSamples(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, internal.NewInternalError("failed to count policies", err)
	}
	if n > 0 {
		return 0, nil
	}
	samples := samplePolicies()
	for i, p := range samples {
		if _, err := s.Create(ctx, p); err != nil {
			return i, err
		}
	}
	return len(samples), nil
}

func validate(p *Policy) error {
	v := validation.NewValidator()
	v.Field("title", p.Title).Required().MaxLength(200)
	v.Field("category", p.Category).OneOf(categories...)
	v.Field("effectiveDate", p.EffectiveDate).Date("2006-01-02")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
