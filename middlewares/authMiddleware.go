package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rossostudios/puerta-abierta-sub004/utils"
)

// AuthMiddleware resolves the caller's organization scope.
//
// A bearer token is optional (the core API tolerates unauthenticated
// requests and scopes them down itself); when present it must be a valid
// JWT and its org claim wins over the X-Org-Id header. The raw token is
// kept in context so the snapshot loader can forward it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if orgId := strings.TrimSpace(c.GetHeader("X-Org-Id")); orgId != "" {
			ctx = utils.SetOrgIdInContext(ctx, orgId)
		}

		auth := c.Request.Header.Get("Authorization")
		if auth != "" {
			bearer := "Bearer "
			if !strings.HasPrefix(auth, bearer) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				c.Abort()
				return
			}
			token := auth[len(bearer):]

			validate, err := utils.JwtValidate(token)
			if err != nil || !validate.Valid {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				c.Abort()
				return
			}

			claim, _ := validate.Claims.(*utils.JwtCustomClaim)
			ctx = utils.SetTokenInContext(ctx, token)
			if claim != nil {
				ctx = utils.SetUserIdInContext(ctx, claim.UserId)
				if claim.OrgId != "" {
					ctx = utils.SetOrgIdInContext(ctx, claim.OrgId)
				}
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CorrelationMiddleware assigns every request a correlation id (honoring an
// incoming X-Correlation-Id) and echoes it on the response.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := strings.TrimSpace(c.GetHeader("X-Correlation-Id"))
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Header("X-Correlation-Id", cid)
		c.Next()
	}
}
