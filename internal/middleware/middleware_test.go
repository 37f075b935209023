package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/acme-dashboard/internal/constants"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/services"
)

type fakeMembers map[string]models.Role

func (f fakeMembers) Membership(_ context.Context, userID, companyID string) (*models.UserRole, error) {
	if companyID == "broken" {
		return nil, errors.New("connection reset")
	}
	role, ok := f[userID+"/"+companyID]
	if !ok {
		return nil, services.ErrNotCompanyMember
	}
	return &models.UserRole{UserID: userID, CompanyID: companyID, Role: role}, nil
}

// asUser stands in for login by putting userID straight into the context.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.POST("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, "u1")
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})
	r.GET("/me", RequireAuth(), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.String(http.StatusOK, id)
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me").Code)

	login := serve(r, http.MethodPost, "/login")
	require.Equal(t, http.StatusNoContent, login.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, ck := range login.Result().Cookies() {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestRequireCompanyAccess(t *testing.T) {
	gin.SetMode(gin.TestMode)

	members := fakeMembers{
		"manager/acme":  models.RoleManager,
		"employee/acme": models.RoleEmployee,
	}
	projects := func(_ context.Context, id string) (string, error) {
		switch id {
		case "p1":
			return "acme", nil
		case "p-broken":
			return "", errors.New("connection reset")
		}
		return "", services.ErrResourceNotFound
	}

	tests := []struct {
		name   string
		user   string
		path   string
		status int
	}{
		{"anonymous", "", "/companies/acme", http.StatusUnauthorized},
		{"member", "employee", "/companies/acme", http.StatusOK},
		{"non-member", "stranger", "/companies/acme", http.StatusNotFound},
		{"membership lookup fails", "employee", "/companies/broken", http.StatusInternalServerError},
		{"resolved through project", "manager", "/projects/p1", http.StatusOK},
		{"unknown project", "manager", "/projects/p9", http.StatusNotFound},
		{"resolver fails", "manager", "/projects/p-broken", http.StatusInternalServerError},
		{"manager route as manager", "manager", "/companies/acme/invitations", http.StatusOK},
		{"manager route as employee", "employee", "/companies/acme/invitations", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(asUser(tt.user))

			ok := func(c *gin.Context) {
				id, _ := GetCompanyID(c)
				c.String(http.StatusOK, id)
			}
			r.GET("/companies/:id", RequireCompanyAccess(members, CompanyParam), ok)
			r.GET("/companies/:id/invitations", RequireCompanyAccess(members, CompanyParam), RequireCompanyManager(), ok)
			r.GET("/projects/:id", RequireCompanyAccess(members, projects), ok)

			w := serve(r, http.MethodGet, tt.path)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "acme", w.Body.String())
			}
		})
	}
}

func TestRequireCompanyManager_WithoutAccessCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", RequireCompanyManager(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/").Code)
}
