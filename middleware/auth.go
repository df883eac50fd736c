package middleware

import (
	"Petly/pkg/context"
	"Petly/pkg/jwt"
	"Petly/pkg/log"
	"Petly/pkg/response"
	"Petly/types"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth verifies the bearer access token and stores the caller's session.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "Falta la cabecera Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Abort(c, http.StatusUnauthorized, "Formato de Authorization no válido")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, strings.TrimSpace(parts[1]))
		if err != nil {
			log.L.Debug("token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			response.Abort(c, http.StatusUnauthorized, "Sesión caducada o no válida")
			return
		}

		context.SetSession(c, &types.Session{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		c.Next()
	}
}

// RequireRole lets the request through only when the session holds one of roles.
// It must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := context.GetSession(c)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Sesión no encontrada")
			return
		}
		for _, r := range roles {
			if s.Is(r) {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "No tienes permiso para esta acción")
	}
}
