package hierarchy

import "time"

type HierarchyEdge struct {
	EmployeeID string    `gorm:"column:employee_id;primaryKey"`
	ReportsTo  string    `gorm:"column:reports_to;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}
