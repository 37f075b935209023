package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/acme-dashboard/internal/dto"
	"github.com/yukikurage/acme-dashboard/internal/models"
)

func TestCompanyHandler_CreateAndGet(t *testing.T) {
	env := setupTestEnv(t)
	c := env.client(t)
	userID := c.signup("Ada", "ada@example.com")

	w := c.do(http.MethodPost, "/api/companies", map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var company dto.CompanyDTO
	decode(t, w, &company)
	assert.Equal(t, "Acme", company.Name)
	assert.Equal(t, userID, company.CreatedBy)

	w = c.do(http.MethodGet, "/api/companies/"+company.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/api/users/me/roles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var roles struct {
		Roles []dto.CompanyRoleDTO `json:"roles"`
	}
	decode(t, w, &roles)
	require.Len(t, roles.Roles, 1)
	assert.Equal(t, company.ID, roles.Roles[0].CompanyID)
	assert.Equal(t, models.RoleManager, roles.Roles[0].Role)
}

func TestCompanyHandler_NonMemberGetsNotFound(t *testing.T) {
	env := setupTestEnv(t)

	owner := env.client(t)
	owner.signup("Ada", "ada@example.com")
	companyID := createdID(t, owner.do(http.MethodPost, "/api/companies", map[string]string{"name": "Acme"}))

	outsider := env.client(t)
	outsider.signup("Bob", "bob@example.com")

	assert.Equal(t, http.StatusNotFound, outsider.do(http.MethodGet, "/api/companies/"+companyID, nil).Code)
	assert.Equal(t, http.StatusNotFound, outsider.do(http.MethodGet, "/api/companies/unknown", nil).Code)
	assert.Equal(t, http.StatusNotFound, outsider.do(http.MethodGet, "/api/companies/"+companyID+"/projects", nil).Code)
}

func TestCompanyHandler_ManagerOnlyRoutes(t *testing.T) {
	env := setupTestEnv(t)

	owner := env.client(t)
	owner.signup("Ada", "ada@example.com")
	companyID := createdID(t, owner.do(http.MethodPost, "/api/companies", map[string]string{"name": "Acme"}))

	employee := env.client(t)
	employeeID := employee.signup("Bob", "bob@example.com")

	w := owner.do(http.MethodPost, "/api/companies/"+companyID+"/members", map[string]string{
		"user_id": employeeID,
		"role":    string(models.RoleEmployee),
	})
	createdID(t, w)

	// The employee can read the company but not manage it.
	assert.Equal(t, http.StatusOK, employee.do(http.MethodGet, "/api/companies/"+companyID, nil).Code)
	assert.Equal(t, http.StatusForbidden, employee.do(http.MethodGet, "/api/companies/"+companyID+"/invitations", nil).Code)
	assert.Equal(t, http.StatusForbidden, employee.do(http.MethodPost, "/api/companies/"+companyID+"/invitations",
		map[string]string{"email": "carol@example.com"}).Code)

	w = owner.do(http.MethodPost, "/api/companies/"+companyID+"/members", map[string]string{
		"user_id": employeeID,
		"role":    string(models.RoleEmployee),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = owner.do(http.MethodPost, "/api/companies/"+companyID+"/members", map[string]string{
		"user_id": employeeID,
		"role":    "Owner",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompanyHandler_Invitations(t *testing.T) {
	env := setupTestEnv(t)

	owner := env.client(t)
	owner.signup("Ada", "ada@example.com")
	companyID := createdID(t, owner.do(http.MethodPost, "/api/companies", map[string]string{"name": "Acme"}))

	w := owner.do(http.MethodPost, "/api/companies/"+companyID+"/invitations", map[string]string{
		"email": "carol@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.InvitationCreatedDTO
	decode(t, w, &created)
	assert.Equal(t, models.InvitationPending, created.Status)
	assert.Equal(t, 2, strings.Count(created.Token, "."), "expected a signed token")

	w = owner.do(http.MethodGet, "/api/companies/"+companyID+"/invitations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), created.Token)

	var listed struct {
		Invitations []dto.InvitationDTO `json:"invitations"`
	}
	decode(t, w, &listed)
	require.Len(t, listed.Invitations, 1)
	assert.Equal(t, "carol@example.com", listed.Invitations[0].Email)

	// Anyone signed in can check a token they were given.
	invitee := env.client(t)
	invitee.signup("Carol", "carol@example.com")

	w = invitee.do(http.MethodGet, "/api/invitations/verify?token="+created.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var verified dto.InvitationDTO
	decode(t, w, &verified)
	assert.Equal(t, companyID, verified.CompanyID)
	assert.Equal(t, models.InvitationPending, verified.Status)

	assert.Equal(t, http.StatusNotFound, invitee.do(http.MethodGet, "/api/invitations/verify?token=nope", nil).Code)
}
