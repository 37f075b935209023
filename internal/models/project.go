package models

import "time"

type Project struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	CompanyID   string    `gorm:"not null;index" json:"company_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// Record groups tasks inside a project, e.g. a board column set or a sprint.
type Record struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	ProjectID   string    `gorm:"not null;index" json:"project_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
