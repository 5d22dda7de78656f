package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/rbac"
	"github.com/pathways-hq/pathways/internal/types"
)

// RequirePermission enforces role based access on a route. The entity
// and action must match an entry in the roles policy file. Requests
// authenticated with an API key carry no roles and are treated as
// full access, same as an empty roles list.
func RequirePermission(rbacService *rbac.RBACService, log *logger.Logger, entity, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := types.GetRoles(c.Request.Context())

		if !rbacService.HasPermission(roles, entity, action) {
			log.Debugw("permission denied",
				"roles", roles,
				"entity", entity,
				"action", action,
			)
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
