package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/acme-dashboard/internal/constants"
	"github.com/yukikurage/acme-dashboard/internal/dto"
	apierrors "github.com/yukikurage/acme-dashboard/internal/errors"
	"github.com/yukikurage/acme-dashboard/internal/middleware"
	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new user and logs them in.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string `json:"name" binding:"required,max=255"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	identity, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !startSession(c, identity) {
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserDTO(*identity))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// Shape checks happen in Authorize so malformed input is rejected the
	// same way as a wrong password.
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	identity, err := h.authService.Authorize(c.Request.Context(), services.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Something went wrong")
		return
	}
	if identity == nil {
		apierrors.InvalidCredentials(c)
		return
	}

	if !startSession(c, identity) {
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*identity))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	identity, err := h.authService.GetIdentity(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*identity))
}

func startSession(c *gin.Context, identity *models.Identity) bool {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, identity.ID)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}
