package leaverequest

import (
	"net/http"
	"strconv"

	"go-leave/internal/middleware"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leaverequest.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
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

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave request submitted successfully", resp)
}

// GetAll lists leave requests scoped by role: Admins see everything grouped
// by department, Managers only their direct reports. The optional months
// query parameter windows results to the trailing N months.
func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	var months *int
	if raw := c.Query("months"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m <= 0 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid months parameter", nil)
			return
		}
		months = &m
	}

	role := c.GetString("role")
	var managerID *uint
	if role == rbac.RoleManager {
		uid := middleware.GetUserID(c)
		managerID = &uid
	}

	records, counts, err := h.service.GetAll(ctx, managerID, months)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if role == rbac.RoleAdmin {
		grouped := make(map[string][]LeaveRequestResponse)
		for _, r := range records {
			grouped[r.Department] = append(grouped[r.Department], r)
		}
		response.SuccessWithCounts(c, http.StatusOK, "Leave requests retrieved successfully", grouped, counts)
		return
	}

	response.SuccessWithCounts(c, http.StatusOK, "Leave requests retrieved successfully", records, counts)
}

func (h *Handler) MyLeaveRequests(c *gin.Context) {
	resp, err := h.service.GetByEmployee(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave requests retrieved successfully", resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Fetch before the scope checks: a missing record must surface as
	// not-found, never as a false authorization failure.
	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	role := c.GetString("role")
	currentID := middleware.GetUserID(c)

	switch role {
	case rbac.RoleEmployee:
		if resp.EmployeeID != currentID {
			h.writeServiceError(c, apperror.ErrForbidden)
			return
		}
	case rbac.RoleManager:
		if resp.EmployeeID != currentID && (resp.ManagerID == nil || *resp.ManagerID != currentID) {
			h.writeServiceError(c, apperror.ErrForbidden)
			return
		}
	}

	response.Success(c, http.StatusOK, "Leave request fetched successfully", resp)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	currentID := middleware.GetUserID(c)

	// A Manager may only decide requests from their own reports; Admins
	// decide any. Existence is confirmed first so a bad id stays a 404.
	if c.GetString("role") == rbac.RoleManager {
		record, err := h.service.GetByID(ctx, id)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		if record.ManagerID == nil || *record.ManagerID != currentID {
			h.writeServiceError(c, apperror.ErrForbidden)
			return
		}
	}

	resp, err := h.service.UpdateStatus(ctx, id, req.Status, currentID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave request status updated successfully", resp)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	resp, err := h.service.Dashboard(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved successfully", resp)
}

func (h *Handler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Cancel(ctx, id, middleware.GetUserID(c)); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave request cancelled successfully", nil)
}
