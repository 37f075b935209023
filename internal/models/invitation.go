package models

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "Pending"
	InvitationAccepted InvitationStatus = "Accepted"
	InvitationExpired  InvitationStatus = "Expired"
)

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationExpired:
		return true
	}
	return false
}

type Invitation struct {
	ID        string           `gorm:"primaryKey" json:"id"`
	CompanyID string           `gorm:"not null;index" json:"company_id"`
	Email     string           `gorm:"type:varchar(255);not null" json:"email"`
	Token     string           `gorm:"type:text;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time        `gorm:"not null" json:"expires_at"`
	Status    InvitationStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// EffectiveStatus is the status as of now. A pending invitation past its
// expiry reads as expired; the stored row is left untouched.
func (i Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.Status == InvitationPending && !now.Before(i.ExpiresAt) {
		return InvitationExpired
	}
	return i.Status
}
