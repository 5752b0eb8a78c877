package employee

import "time"

// EmployeeImage is a profile-image override that survives roster reloads.
type EmployeeImage struct {
	EmployeeID   string    `gorm:"column:employee_id;primaryKey"`
	ProfileImage string    `gorm:"column:profile_image;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}
