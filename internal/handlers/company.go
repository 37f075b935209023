package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/acme-dashboard/internal/dto"
	apierrors "github.com/yukikurage/acme-dashboard/internal/errors"
	"github.com/yukikurage/acme-dashboard/internal/middleware"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/services"
)

type CompanyHandler struct {
	companyService *services.CompanyService
}

func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CreateCompany creates a company managed by the current user
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateCompanyRequest struct {
		Name string `json:"name" binding:"required,max=255"`
	}

	var req CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req.Name, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company))
}

// ListCompanies returns every company by name
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": dto.ToCompanyDTOs(companies)})
}

// GetCompany returns the company resolved by the access middleware
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID, _ := middleware.GetCompanyID(c)
	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// ListMyRoles returns the current user's company memberships
func (h *CompanyHandler) ListMyRoles(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	roles, err := h.companyService.ListUserRoles(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": dto.ToCompanyRoleDTOs(roles)})
}

// AddMember adds an existing user to the company
func (h *CompanyHandler) AddMember(c *gin.Context) {
	companyID, _ := middleware.GetCompanyID(c)

	type AddMemberRequest struct {
		UserID string      `json:"user_id" binding:"required"`
		Role   models.Role `json:"role" binding:"required"`
	}

	var req AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.companyService.AddMember(c.Request.Context(), services.AddMemberInput{
		CompanyID: companyID,
		UserID:    req.UserID,
		Role:      req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedDTO{ID: id})
}

// CreateInvitation invites an email address to the company
func (h *CompanyHandler) CreateInvitation(c *gin.Context) {
	companyID, _ := middleware.GetCompanyID(c)

	type CreateInvitationRequest struct {
		Email string `json:"email" binding:"required"`
		Token string `json:"token"`
	}

	var req CreateInvitationRequest
	if !bindJSON(c, &req) {
		return
	}

	invitation, err := h.companyService.CreateInvitation(c.Request.Context(), services.CreateInvitationInput{
		CompanyID: companyID,
		Email:     req.Email,
		Token:     req.Token,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvitationCreatedDTO(*invitation))
}

func (h *CompanyHandler) ListInvitations(c *gin.Context) {
	companyID, _ := middleware.GetCompanyID(c)
	invitations, err := h.companyService.ListInvitations(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": dto.ToInvitationDTOs(invitations)})
}

// VerifyInvitation reports whether ?token= is a usable invitation
func (h *CompanyHandler) VerifyInvitation(c *gin.Context) {
	invitation, err := h.companyService.VerifyInvitation(c.Request.Context(), c.Query("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvitationDTO(*invitation))
}
