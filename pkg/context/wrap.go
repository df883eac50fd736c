package context

import (
	"Petly/pkg/log"
	"Petly/pkg/response"
	"Petly/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const CtxSession = "session"

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			if c.Writer.Written() {
				return
			}
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg)
				return
			}
			log.L.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: http.StatusInternalServerError,
				Msg:  "Error interno del servidor",
			})
		}
	}
}

func SetSession(c *gin.Context, s *types.Session) {
	c.Set(CtxSession, s)
}

// GetSession returns the authenticated caller stored by middleware.Auth.
func GetSession(c *gin.Context) (*types.Session, error) {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil, response.Unauthorized("Sesión no encontrada")
	}

	s, ok := v.(*types.Session)
	if !ok || s == nil {
		return nil, response.Unauthorized("Sesión inválida")
	}

	return s, nil
}
