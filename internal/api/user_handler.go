package api

import (
	"errors"
	"net/http"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler holds the user-management service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

type ProvisionRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// ProvisionResponse keeps the legacy contract: a success flag plus
// either the created user id or the failure reason. Every failure mode
// answers 400 with success=false.
type ProvisionResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"user_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type UpdateUserRequest struct {
	Name string       `json:"name"`
	Role *domain.Role `json:"role"`
}

// --- Handler Methods ---

// Provision creates a viewer user (auth account plus profile) in the
// caller's workspace.
func (h *UserHandler) Provision(c *gin.Context) {
	var req ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ProvisionResponse{Success: false, Error: "email and a password of at least 8 characters are required"})
		return
	}

	actor := getUserFromContext(c)
	user, err := h.userService.Provision(c.Request.Context(), actor, req.Email, req.Password, req.Name)
	if err != nil {
		// provisioning reports every failure the same way, a 400 with
		// the reason in the body
		c.JSON(http.StatusBadRequest, ProvisionResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProvisionResponse{Success: true, UserID: user.ID.String()})
}

// List returns every profile in the caller's workspace.
func (h *UserHandler) List(c *gin.Context) {
	actor := getUserFromContext(c)
	users, err := h.userService.List(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientPermission) {
			abortWithError(c, http.StatusForbidden, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "failed to list users")
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Update renames a user or, for owners, changes their role.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := getUserFromContext(c)
	user, err := h.userService.Update(c.Request.Context(), actor, id, req.Name, req.Role)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// Deactivate disables a user's access.
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	actor := getUserFromContext(c)
	if err := h.userService.Deactivate(c.Request.Context(), actor, id); err != nil {
		respondUserError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInsufficientPermission),
		errors.Is(err, service.ErrCannotModifyOwner),
		errors.Is(err, service.ErrAdminScopeExceeded):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}
