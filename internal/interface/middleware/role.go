package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/internal/domain/entity"
	"github.com/chapternet/directory-api/pkg/response"
)

// RequireRole gates a route group to the given roles. Must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := entity.Role(c.GetString(CtxUserRole))
		if _, ok := allowed[role]; !ok {
			resp := response.Error[any](c, http.StatusForbidden, "insufficient role", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}
