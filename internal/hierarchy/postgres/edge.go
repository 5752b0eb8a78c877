package postgres

import (
	"context"

	"gorm.io/gorm"

	hierarchyDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/hierarchy"
	"github.com/smartworld/smartdesk/internal/hierarchy"
)

type EdgeRepository struct {
	db *gorm.DB
}

func NewEdgeRepository(db *gorm.DB) hierarchy.RepositoryAPI {
	return &EdgeRepository{db: db}
}

func (r *EdgeRepository) List(ctx context.Context) ([]*hierarchyDatamodel.HierarchyEdge, error) {
	var edges []*hierarchyDatamodel.HierarchyEdge
	err := r.db.WithContext(ctx).Order("created_at ASC, employee_id ASC").Find(&edges).Error
	return edges, err
}

func (r *EdgeRepository) Create(ctx context.Context, edge *hierarchyDatamodel.HierarchyEdge) error {
	return r.db.WithContext(ctx).Create(edge).Error
}

func (r *EdgeRepository) Delete(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Delete(&hierarchyDatamodel.HierarchyEdge{}).Error
}

func (r *EdgeRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&hierarchyDatamodel.HierarchyEdge{}).Error
}
