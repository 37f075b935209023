package models

import "time"

type Company struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedBy string    `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Creator User `gorm:"foreignKey:CreatedBy" json:"-"`
}
