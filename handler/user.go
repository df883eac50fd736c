package handler

import (
	"Petly/config"
	"Petly/middleware"
	"Petly/pkg/context"
	"Petly/service"
	"Petly/types"

	"github.com/gin-gonic/gin"
)

type User struct {
	Config      *config.Config
	UserService service.IUserService
}

func (u *User) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/users/me", middleware.Auth([]byte(u.Config.Jwt.Secret)))
	g.GET("", context.Wrap(u.Me))
	g.PATCH("", context.Wrap(u.UpdateMe))
}

func (u *User) Me(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	resp, err := u.UserService.Me(c.Request.Context(), s)
	return respond(c, resp, err)
}

// UpdateMe edits the profile and reports the points earned by completing it.
func (u *User) UpdateMe(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	var req types.UpdateMeReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := u.UserService.UpdateMe(c.Request.Context(), s, &req)
	return respond(c, resp, err)
}
