package middleware

import (
	"net/http"
	"strings"

	"github.com/GradGlobe-org/admin-panel-sub000/internal/dto"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Auth resolves the bearer token through the identity provider and gates
// the route on the given role. The resolved identity is attached to the
// request context.
func Auth(provider service.IdentityProvider, role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "unauthenticated", Message: "Missing bearer token"})
			return
		}

		identity, err := provider.ResolveToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "unauthenticated", Message: "Invalid or expired token"})
			return
		}
		if identity.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Code: "forbidden", Message: "Insufficient role for this resource"})
			return
		}

		ctx.Set(identityKey, identity)
		ctx.Next()
	}
}

// Identity returns the identity attached by Auth. Only valid on routes
// behind the middleware.
func Identity(ctx *gin.Context) *service.Identity {
	value, _ := ctx.Get(identityKey)
	identity, _ := value.(*service.Identity)
	return identity
}
