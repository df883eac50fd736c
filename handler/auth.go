package handler

import (
	"Petly/config"
	"Petly/pkg/context"
	"Petly/pkg/response"
	"Petly/service"
	"Petly/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Config      *config.Config
	AuthService service.IAuthService
}

func (a *Auth) RegisterRouter(r gin.IRouter) {
	g := r.Group("/auth")
	g.POST("/register", context.Wrap(a.Register))
	g.POST("/login", context.Wrap(a.Login))
}

func (a *Auth) Register(c *gin.Context) error {
	var req types.RegisterReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := a.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (a *Auth) Login(c *gin.Context) error {
	var req types.LoginReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := a.AuthService.Login(c.Request.Context(), &req)
	return respond(c, resp, err)
}
