package middleware

import (
	"context"
	"course_academy_backend/internal/config"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the bearer token and stores an explicit Session on the request.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret, cfg.JWT.Issuer)
		if err != nil {
			logger.Log.Debug("jwt rejected", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		util.SetSession(c, util.SessionFromClaims(claims))
		c.Next()
	}
}

// RoleMiddleware lets admins and superadmins through every role gate.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := util.GetSession(c)
		if !ok {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := session.Role == model.Admin || session.Role == model.SuperAdmin
		for _, role := range roles {
			if session.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserProvisioner interface {
	EnsureUser(ctx context.Context, session util.Session) error
}

// ProvisionMiddleware creates the user record on the first authenticated request
// and refreshes last-seen afterwards.
func ProvisionMiddleware(p UserProvisioner) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := util.GetSession(c)
		if ok {
			if err := p.EnsureUser(c.Request.Context(), session); err != nil {
				logger.Log.Warn("user provisioning failed", zap.String("user_id", session.UserID), zap.Error(err))
			}
		}
		c.Next()
	}
}
