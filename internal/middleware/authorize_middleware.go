package middleware

import (
	"net/http"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// PolicyService is a local interface so this package does not depend on
// the rbac package directly.
type PolicyService interface {
	Enforce(role, resource, action string) (bool, error)
}

// Authorize evaluates the permission table for the caller's role. Scope
// checks that need record data (self, direct report, owner) stay in the
// handlers.
func Authorize(service PolicyService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource", resource+":"+action)
			c.Abort()
			return
		}

		c.Next()
	}
}
