package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/smartworld/smartdesk/internal/alert"
	alertDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/alert"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) alert.RepositoryAPI {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) ListActive(ctx context.Context, audience string, now time.Time) ([]*alertDatamodel.Alert, error) {
	var alerts []*alertDatamodel.Alert
	q := r.db.WithContext(ctx).Where("(expires_at IS NULL OR expires_at > ?)", now.UTC())
	if audience != "" {
		q = q.Where("target_audience IN ?", []string{alert.AudienceAll, audience})
	}
	err := q.Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) ListAll(ctx context.Context) ([]*alertDatamodel.Alert, error) {
	var alerts []*alertDatamodel.Alert
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*alertDatamodel.Alert, error) {
	var a alertDatamodel.Alert
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlertRepository) Create(ctx context.Context, a *alertDatamodel.Alert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AlertRepository) Update(ctx context.Context, a *alertDatamodel.Alert) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AlertRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&alertDatamodel.Alert{})
	return res.RowsAffected > 0, res.Error
}

func (r *AlertRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&alertDatamodel.Alert{}).Count(&n).Error
	return n, err
}
