package middleware

import (
	"go-procurement/internal/domain"
	"go-procurement/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// RBACAuthorize rejects the request unless the caller's role holds
// resource:action. Services repeat the check for mutations.
func RBACAuthorize(authz domain.Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		if err := authz.Authorize(actor, resource, action); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}
