package user

import (
	"go-leave/internal/config"
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	tokenCfg config.TokenConfig,
) {
	users := r.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Login)

	authed := users.Group("")
	authed.Use(middleware.Auth(tokenCfg))
	{
		authed.GET("", middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionList), handler.GetAll)
		authed.GET("/managers-by-department/:department",
			middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionListManagersByDept), handler.ManagersByDepartment)
		authed.PATCH("/change-password",
			middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionChangePassword), handler.ChangePassword)
		authed.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionRead), handler.GetByID)
		authed.PATCH("/:id", middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionUpdate), handler.UpdateProfile)
		authed.DELETE("/:id", middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionDelete), handler.Delete)
		authed.POST("/assign-manager",
			middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionAssignManager), handler.AssignManager)
		authed.POST("/promote-to-manager",
			middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionPromote), handler.PromoteToManager)
	}
}
