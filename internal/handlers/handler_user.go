package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarasev/currency_converter_app/internal/apperrors"
	portssvc "github.com/mkarasev/currency_converter_app/internal/core/ports/services"
	"github.com/mkarasev/currency_converter_app/internal/dto"
	"github.com/mkarasev/currency_converter_app/internal/middleware"
)

// userHandler handles HTTP requests related to user accounts.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers the authenticated self-service user routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	rg.GET("/users/me", h.me)
}

// registerAdminUserRoutes registers the admin-only user management routes.
func registerAdminUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.POST("/:id/toggle-active", h.toggleUserActive)
		users.POST("/:id/toggle-admin", h.toggleUserAdmin)
		users.DELETE("/:id", h.deleteUser)
	}
}

// me godoc
// @Summary Get the current user
// @Description Retrieves the authenticated user's own account details.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}
		logger.Error("Failed to load current user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List user accounts
// @Description Admin-only list of users, newest first.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// toggleUserActive godoc
// @Summary Toggle a user's active flag
// @Description Admins cannot change their own status.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse "Self-action refused"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/toggle-active [post]
func (h *userHandler) toggleUserActive(c *gin.Context) {
	if !h.refuseSelfAction(c) {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.ToggleUserActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeUserMutationError(c, logger, err, "toggle active flag of")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// toggleUserAdmin godoc
// @Summary Toggle a user's admin flag
// @Description Admins cannot change their own privileges.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse "Self-action refused"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/toggle-admin [post]
func (h *userHandler) toggleUserAdmin(c *gin.Context) {
	if !h.refuseSelfAction(c) {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.ToggleUserAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeUserMutationError(c, logger, err, "toggle admin flag of")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user account
// @Description Admins cannot delete themselves. Users with recorded conversions cannot be deleted.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse "Self-action refused"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "User has conversion history"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	if !h.refuseSelfAction(c) {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.writeUserMutationError(c, logger, err, "delete")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// refuseSelfAction blocks admin mutations that target the acting admin's own
// account. Returns false when the request has been answered.
func (h *userHandler) refuseSelfAction(c *gin.Context) bool {
	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return false
	}
	if actorID == c.Param("id") {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Cannot perform this action on your own account"})
		return false
	}
	return true
}

func (h *userHandler) writeUserMutationError(c *gin.Context, logger *slog.Logger, err error, op string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "User has recorded conversions and cannot be deleted"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Conflicting user state"})
	default:
		logger.Error("Failed to "+op+" user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update user"})
	}
}
