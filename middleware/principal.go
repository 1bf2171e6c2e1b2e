package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pqh/blog/security"
	"github.com/pqh/blog/utils"
)

// Principal binds the caller named by an optional bearer token to the request context.
// Requests without an Authorization header continue anonymously; a bad token is rejected.
func Principal(secret string, revoked security.RevocationList) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(ctx, "invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			unauthorized(ctx, "empty bearer token")
			return
		}

		if revoked != nil && revoked.IsRevoked(ctx.Request.Context(), tokenString) {
			unauthorized(ctx, "token revoked")
			return
		}

		principal, err := security.ParseToken(secret, tokenString)
		if err != nil {
			unauthorized(ctx, "invalid token")
			return
		}

		ctx.Request = ctx.Request.WithContext(security.WithPrincipal(ctx.Request.Context(), principal))
		ctx.Next()
	}
}

func unauthorized(ctx *gin.Context, title string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Title:   title,
		Message: "error.http.401",
	})
}
