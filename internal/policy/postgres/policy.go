package postgres

import (
	"context"

	"gorm.io/gorm"

	policyDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/policy"
	"github.com/smartworld/smartdesk/internal/policy"
)

type PolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) policy.RepositoryAPI {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) List(ctx context.Context, category string) ([]*policyDatamodel.Policy, error) {
	var policies []*policyDatamodel.Policy
	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC, id DESC").Find(&policies).Error
	return policies, err
}

func (r *PolicyRepository) GetByID(ctx context.Context, id string) (*policyDatamodel.Policy, error) {
	var p policyDatamodel.Policy
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PolicyRepository) Create(ctx context.Context, p *policyDatamodel.Policy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PolicyRepository) Update(ctx context.Context, p *policyDatamodel.Policy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PolicyRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&policyDatamodel.Policy{})
	return res.RowsAffected > 0, res.Error
}

func (r *PolicyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&policyDatamodel.Policy{}).Count(&n).Error
	return n, err
}
