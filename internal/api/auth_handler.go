package api

import (
	"errors"
	"net/http"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like password hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	OwnerID   *string     `json:"ownerId,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CapabilitiesResponse mirrors domain.Capabilities for the client.
type CapabilitiesResponse struct {
	IsOwner        bool `json:"isOwner"`
	IsAdmin        bool `json:"isAdmin"`
	IsViewer       bool `json:"isViewer"`
	CanEdit        bool `json:"canEdit"`
	CanManageUsers bool `json:"canManageUsers"`
}

type LoginResponse struct {
	Token        string               `json:"token"`
	User         UserResponse         `json:"user"`
	Capabilities CapabilitiesResponse `json:"capabilities"`
}

// --- Handler Methods ---

// Login authenticates credentials and returns a bearer token plus the
// resolved profile and its capability set.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "an unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:        token,
		User:         MapUserToResponse(user),
		Capabilities: mapCapabilities(user),
	})
}

// Me returns the profile behind the presented token. The client calls
// this on startup to restore a persisted session.
func (h *AuthHandler) Me(c *gin.Context) {
	user := getUserFromContext(c)
	if user == nil {
		abortWithError(c, http.StatusInternalServerError, "user not found in context")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         MapUserToResponse(user),
		"capabilities": mapCapabilities(user),
	})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	resp := UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
	if user.OwnerID != nil {
		owner := user.OwnerID.String()
		resp.OwnerID = &owner
	}
	return resp
}

func mapCapabilities(user *domain.User) CapabilitiesResponse {
	caps := user.Capabilities()
	return CapabilitiesResponse{
		IsOwner:        caps.IsOwner,
		IsAdmin:        caps.IsAdmin,
		IsViewer:       caps.IsViewer,
		CanEdit:        caps.CanEdit,
		CanManageUsers: caps.CanManageUsers,
	}
}
