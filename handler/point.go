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

// Point serves the caller's points account and the rewards catalog.
type Point struct {
	Config            *config.Config
	RewardService     service.IRewardService
	RedemptionService service.IRedemptionService
}

func (p *Point) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(p.Config.Jwt.Secret))

	points := r.Group("/v1/points", authorize)
	points.GET("/balance", context.Wrap(p.Balance))
	points.GET("/records", context.Wrap(p.GetRecords))

	rewards := r.Group("/v1/rewards", authorize)
	rewards.GET("/catalog", context.Wrap(p.Catalog))
	rewards.POST("/:id/redeem", context.Wrap(p.Redeem))
	rewards.GET("/redemptions", context.Wrap(p.Redemptions))
}

func (p *Point) Balance(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	resp, err := p.RewardService.Balance(c.Request.Context(), s.UserID)
	return respond(c, resp, err)
}

func (p *Point) GetRecords(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	var req types.ListPointRecordsReq
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	resp, err := p.RewardService.Records(c.Request.Context(), s.UserID, &req)
	return respond(c, resp, err)
}

func (p *Point) Catalog(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	resp, err := p.RedemptionService.Catalog(c.Request.Context(), s)
	return respond(c, resp, err)
}

func (p *Point) Redeem(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resp, err := p.RedemptionService.Redeem(c.Request.Context(), s, id, c.GetHeader(idempotencyHeader))
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (p *Point) Redemptions(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	var req types.CursorReq
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	resp, err := p.RedemptionService.Redemptions(c.Request.Context(), s, &req)
	return respond(c, resp, err)
}
