package alert

import "time"

type Alert struct {
	ID             string     `gorm:"column:id;primaryKey"`
	Title          string     `gorm:"column:title;not null"`
	Message        string     `gorm:"column:message;not null"`
	Type           string     `gorm:"column:type;not null;default:general"`
	Priority       string     `gorm:"column:priority;not null;default:medium"`
	TargetAudience string     `gorm:"column:target_audience;not null;default:all;index"`
	CreatedBy      string     `gorm:"column:created_by;not null"`
	ExpiresAt      *time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;not null;index"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;not null"`
}
