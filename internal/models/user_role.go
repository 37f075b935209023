package models

import "time"

type Role string

const (
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// IsValid reports whether r is one of the known company roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleEmployee:
		return true
	}
	return false
}

type UserRole struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	CompanyID string    `gorm:"not null;index" json:"company_id"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"joined_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}
