package handler

import (
	"Petly/config"
	"Petly/middleware"
	"Petly/pkg/context"
	"Petly/pkg/response"
	"Petly/service"
	"Petly/types"

	"github.com/gin-gonic/gin"
)

type Referral struct {
	Config          *config.Config
	ReferralService service.IReferralService
}

func (h *Referral) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/referrals", middleware.Auth([]byte(h.Config.Jwt.Secret)))
	g.POST("", context.Wrap(h.Invite))
	g.GET("", context.Wrap(h.List))
}

func (h *Referral) Invite(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	var req types.InviteReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.ReferralService.Invite(c.Request.Context(), s, &req)
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (h *Referral) List(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	resp, err := h.ReferralService.List(c.Request.Context(), s)
	return respond(c, resp, err)
}
