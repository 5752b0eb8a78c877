package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	employeeDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/employee"
	"github.com/smartworld/smartdesk/internal/directory"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) directory.RepositoryAPI {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) ListImages(ctx context.Context) ([]*employeeDatamodel.EmployeeImage, error) {
	var images []*employeeDatamodel.EmployeeImage
	err := r.db.WithContext(ctx).Order("employee_id ASC").Find(&images).Error
	return images, err
}

func (r *ImageRepository) UpsertImage(ctx context.Context, image *employeeDatamodel.EmployeeImage) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"profile_image", "updated_at"}),
	}).Create(image).Error
}
