package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/acme-dashboard/internal/constants"
	apierrors "github.com/yukikurage/acme-dashboard/internal/errors"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/services"
)

// MembershipChecker reports a user's role in a company.
type MembershipChecker interface {
	Membership(ctx context.Context, userID, companyID string) (*models.UserRole, error)
}

// CompanyResolver maps the :id route parameter to the owning company.
type CompanyResolver func(ctx context.Context, id string) (string, error)

// CompanyParam treats :id as the company ID itself.
func CompanyParam(_ context.Context, id string) (string, error) {
	return id, nil
}

// RequireCompanyAccess checks that the user holds a role in the company that
// owns the resource named by :id. Non-members get 404 so that the existence
// of other companies' resources is not revealed.
func RequireCompanyAccess(members MembershipChecker, resolve CompanyResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		companyID, err := resolve(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrResourceNotFound) {
				apierrors.NotFound(c, "")
			} else {
				_ = c.Error(err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		role, err := members.Membership(c.Request.Context(), userID, companyID)
		if err != nil {
			if errors.Is(err, services.ErrNotCompanyMember) {
				apierrors.NotFound(c, "")
			} else {
				_ = c.Error(err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCompany, companyID)
		c.Set(constants.ContextKeyRole, role.Role)
		c.Next()
	}
}

// RequireCompanyManager allows only Managers of the company resolved by
// RequireCompanyAccess.
func RequireCompanyManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(constants.ContextKeyRole)
		if !ok {
			apierrors.Forbidden(c, "Company access required")
			c.Abort()
			return
		}

		if r, _ := role.(models.Role); r != models.RoleManager {
			apierrors.Forbidden(c, "Only company managers can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCompanyID returns the company resolved by RequireCompanyAccess.
func GetCompanyID(c *gin.Context) (string, bool) {
	v, ok := c.Get(constants.ContextKeyCompany)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
