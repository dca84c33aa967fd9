package user

import (
	"net/http"
	"strconv"

	"go-leave/internal/auth"
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service     Service
	authService auth.Service
	logger      *zap.Logger
}

func NewHandler(service Service, authService auth.Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{service: service, authService: authService, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("user request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindingError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid id parameter", nil)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User registered successfully", resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", resp)
}

// GetAll lists users scoped by role: Admins see everyone, Managers only
// their direct reports. Results are grouped by role for display.
func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	var managerID *uint
	if c.GetString("role") == rbac.RoleManager {
		uid := middleware.GetUserID(c)
		managerID = &uid
	}

	users, err := h.service.GetAll(ctx, managerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	grouped := make(map[string][]UserResponse)
	for _, u := range users {
		grouped[u.Role] = append(grouped[u.Role], u)
	}

	response.Success(c, http.StatusOK, "Users retrieved successfully", grouped)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role := c.GetString("role")
	currentID := middleware.GetUserID(c)

	if role == rbac.RoleEmployee && currentID != id {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	// Fetch before the manager-scope check: a missing record must surface
	// as not-found, never as a false authorization failure.
	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if role == rbac.RoleManager && currentID != id {
		if resp.ManagerID == nil || *resp.ManagerID != currentID {
			h.writeServiceError(c, apperror.ErrForbidden)
			return
		}
	}

	response.Success(c, http.StatusOK, "User fetched successfully", resp)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if c.GetString("role") != rbac.RoleAdmin && middleware.GetUserID(c) != id {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	if err := h.service.UpdateProfile(ctx, id, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User profile updated successfully", nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	if err := h.service.ChangePassword(ctx, middleware.GetUserID(c), req.OldPassword, req.NewPassword); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *Handler) AssignManager(c *gin.Context) {
	ctx := c.Request.Context()

	var req AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	if err := h.service.AssignManager(ctx, req.UserID, req.ManagerID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Manager assigned successfully", nil)
}

func (h *Handler) PromoteToManager(c *gin.Context) {
	ctx := c.Request.Context()

	var req PromoteToManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	if err := h.service.PromoteToManager(ctx, req.UserID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User promoted to Manager successfully", nil)
}

func (h *Handler) ManagersByDepartment(c *gin.Context) {
	ctx := c.Request.Context()
	department := c.Param("department")

	managers, err := h.service.ManagersByDepartment(ctx, department)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Managers retrieved successfully", managers)
}
