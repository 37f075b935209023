package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/acme-dashboard/internal/constants"
	apierrors "github.com/yukikurage/acme-dashboard/internal/errors"
	"github.com/yukikurage/acme-dashboard/internal/repository"
	"github.com/yukikurage/acme-dashboard/internal/services"
)

// respondError maps service errors to API responses. Anything unrecognised
// is a 500 whose body never includes the underlying error text.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidInvitation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyCompanyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, services.ErrRecordNotFound),
		errors.Is(err, services.ErrResourceNotFound),
		errors.Is(err, services.ErrInvitationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvitationNotPending),
		errors.Is(err, services.ErrInvalidTaskAssignee),
		errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.Unprocessable(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured),
		errors.Is(err, services.ErrInvitationUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		// The cause is logged by middleware.ErrorLogger. Only repository
		// errors carry a message fit for the client.
		_ = c.Error(err)
		var dataErr *repository.Error
		if errors.As(err, &dataErr) {
			apierrors.InternalError(c, dataErr.Error())
			return
		}
		apierrors.InternalError(c, "")
	}
}
