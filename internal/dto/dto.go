package dto

import (
	"time"

	"github.com/yukikurage/acme-dashboard/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreatedDTO is returned by endpoints that create a row
type CreatedDTO struct {
	ID string `json:"id"`
}

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyRoleDTO is one of the current user's memberships
type CompanyRoleDTO struct {
	CompanyID string      `json:"company_id"`
	Role      models.Role `json:"role"`
	JoinedAt  time.Time   `json:"joined_at"`
}

// InvitationDTO represents an invitation in list responses. The token is
// never listed.
type InvitationDTO struct {
	ID        string                  `json:"id"`
	CompanyID string                  `json:"company_id"`
	Email     string                  `json:"email"`
	ExpiresAt time.Time               `json:"expires_at"`
	Status    models.InvitationStatus `json:"status"`
}

// InvitationCreatedDTO carries the token once, at creation time
type InvitationCreatedDTO struct {
	InvitationDTO
	Token string `json:"token"`
}

// InvoicePageDTO is one page of the invoice table
type InvoicePageDTO struct {
	Invoices []models.InvoicesTable `json:"invoices"`
	Page     int                    `json:"page"`
}

// ToUserDTO converts an Identity to UserDTO
func ToUserDTO(identity models.Identity) UserDTO {
	return UserDTO{
		ID:    identity.ID,
		Name:  identity.Name,
		Email: identity.Email,
	}
}

func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:        company.ID,
		Name:      company.Name,
		CreatedBy: company.CreatedBy,
		CreatedAt: company.CreatedAt,
	}
}

func ToCompanyDTOs(companies []models.Company) []CompanyDTO {
	out := make([]CompanyDTO, len(companies))
	for i, c := range companies {
		out[i] = ToCompanyDTO(c)
	}
	return out
}

func ToCompanyRoleDTOs(roles []models.UserRole) []CompanyRoleDTO {
	out := make([]CompanyRoleDTO, len(roles))
	for i, r := range roles {
		out[i] = CompanyRoleDTO{
			CompanyID: r.CompanyID,
			Role:      r.Role,
			JoinedAt:  r.JoinedAt,
		}
	}
	return out
}

func ToInvitationDTO(inv models.Invitation) InvitationDTO {
	return InvitationDTO{
		ID:        inv.ID,
		CompanyID: inv.CompanyID,
		Email:     inv.Email,
		ExpiresAt: inv.ExpiresAt,
		Status:    inv.Status,
	}
}

func ToInvitationDTOs(invitations []models.Invitation) []InvitationDTO {
	out := make([]InvitationDTO, len(invitations))
	for i, inv := range invitations {
		out[i] = ToInvitationDTO(inv)
	}
	return out
}

// ToInvitationCreatedDTO includes the token so the caller can deliver it
func ToInvitationCreatedDTO(inv models.Invitation) InvitationCreatedDTO {
	return InvitationCreatedDTO{
		InvitationDTO: ToInvitationDTO(inv),
		Token:         inv.Token,
	}
}
