package policy

import "time"

type Policy struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Title         string    `gorm:"column:title;not null"`
	Category      string    `gorm:"column:category;not null"`
	Content       string    `gorm:"column:content"`
	Version       string    `gorm:"column:version;not null"`
	EffectiveDate string    `gorm:"column:effective_date"`
	Author        string    `gorm:"column:author"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
}
