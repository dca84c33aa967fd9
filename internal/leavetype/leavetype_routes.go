package leavetype

import (
	"go-leave/internal/config"
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	tokenCfg config.TokenConfig,
) {
	types := r.Group("/leavetype")
	types.Use(middleware.Auth(tokenCfg))
	{
		types.POST("/Create", middleware.Authorize(rbacService, rbac.ResourceLeaveType, rbac.ActionCreate), handler.Create)
		types.GET("/GetAll", middleware.Authorize(rbacService, rbac.ResourceLeaveType, rbac.ActionList), handler.GetAll)
		types.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceLeaveType, rbac.ActionRead), handler.GetByID)
		types.PATCH("/:id", middleware.Authorize(rbacService, rbac.ResourceLeaveType, rbac.ActionUpdate), handler.Update)
		types.DELETE("/:id", middleware.Authorize(rbacService, rbac.ResourceLeaveType, rbac.ActionDelete), handler.Delete)
	}
}
