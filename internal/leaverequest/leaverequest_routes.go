package leaverequest

import (
	"time"

	"go-leave/internal/config"
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	tokenCfg config.TokenConfig,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaverequest")
	leaves.Use(middleware.Auth(tokenCfg))
	{
		leaves.POST("/request",
			middleware.Authorize(rbacService, rbac.ResourceLeaveRequest, rbac.ActionCreate),
			middleware.Idempotency(rdb, 24*time.Hour),
			handler.Submit)
		leaves.GET("/GetAll",
			middleware.Authorize(rbacService, rbac.ResourceLeaveRequest, rbac.ActionList), handler.GetAll)
		leaves.GET("/MyLeaveRequests",
			middleware.Authorize(rbacService, rbac.ResourceLeaveRequest, rbac.ActionListOwn), handler.MyLeaveRequests)
		leaves.GET("/GetDashboard",
			middleware.Authorize(rbacService, rbac.ResourceLeaveRequest, rbac.ActionDashboard), handler.GetDashboard)
		leaves.GET("/:id",
			middleware.Authorize(rbacService, rbac.ResourceLeaveRequest, rbac.ActionRead), handler.GetByID)
		leaves.POST("/:id/UpdateStatus",
			middleware.Authorize(rbacService, rbac.ResourceLeaveRequest, rbac.ActionUpdateStatus), handler.UpdateStatus)
		leaves.POST("/:id/Cancel",
			middleware.Authorize(rbacService, rbac.ResourceLeaveRequest, rbac.ActionCancel), handler.Cancel)
	}
}
