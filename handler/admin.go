package handler

import (
	"Petly/config"
	"Petly/middleware"
	"Petly/models"
	"Petly/pkg/context"
	"Petly/pkg/response"
	"Petly/service"
	"Petly/types"

	"github.com/gin-gonic/gin"
)

// Admin groups the back-office routes. Every route requires the admin role.
type Admin struct {
	Config            *config.Config
	UserService       service.IUserService
	RewardService     service.IRewardService
	RedemptionService service.IRedemptionService
}

func (a *Admin) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/admin", middleware.Auth([]byte(a.Config.Jwt.Secret)), middleware.RequireRole(models.RoleAdmin))
	g.GET("/users", context.Wrap(a.Users))
	g.POST("/points/grant", context.Wrap(a.Grant))
	g.POST("/rewards", context.Wrap(a.CreateReward))
}

func (a *Admin) Users(c *gin.Context) error {
	var req types.ListUsersReq
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	resp, err := a.UserService.List(c.Request.Context(), &req)
	return respond(c, resp, err)
}

func (a *Admin) Grant(c *gin.Context) error {
	var req types.ManualGrantReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := a.RewardService.ManualGrant(c.Request.Context(), &req)
	return respond(c, resp, err)
}

func (a *Admin) CreateReward(c *gin.Context) error {
	var req types.CreatePlatformRewardReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := a.RedemptionService.CreatePlatformReward(c.Request.Context(), &req)
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}
