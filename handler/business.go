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

type Business struct {
	Config             *config.Config
	BusinessService    service.IBusinessService
	AppointmentService service.IAppointmentService
	ReviewService      service.IReviewService
	RedemptionService  service.IRedemptionService
}

func (b *Business) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(b.Config.Jwt.Secret))
	owner := middleware.RequireRole(models.RoleBusiness, models.RoleAdmin)

	g := r.Group("/v1/businesses")
	g.GET("", context.Wrap(b.List))
	g.GET("/:id", context.Wrap(b.Get))
	g.GET("/:id/reviews", context.Wrap(b.Reviews))
	g.GET("/:id/redeemables", context.Wrap(b.ListRedeemables))

	g.POST("", authorize, owner, context.Wrap(b.Create))
	g.PATCH("/:id", authorize, owner, context.Wrap(b.Update))
	g.POST("/:id/services", authorize, owner, context.Wrap(b.AddService))
	g.POST("/:id/redeemables", authorize, owner, context.Wrap(b.CreateRedeemable))
	g.DELETE("/:id/redeemables/:rid", authorize, owner, context.Wrap(b.DeleteRedeemable))
	g.GET("/:id/appointments", authorize, owner, context.Wrap(b.Appointments))

	g.POST("/:id/redeemables/:rid/redeem", authorize, context.Wrap(b.Redeem))
}

func (b *Business) List(c *gin.Context) error {
	var req types.ListBusinessesReq
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	resp, err := b.BusinessService.List(c.Request.Context(), &req)
	return respond(c, resp, err)
}

func (b *Business) Get(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resp, err := b.BusinessService.Get(c.Request.Context(), id)
	return respond(c, resp, err)
}

func (b *Business) Create(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	var req types.CreateBusinessReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := b.BusinessService.Create(c.Request.Context(), s, &req)
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (b *Business) Update(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateBusinessReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := b.BusinessService.Update(c.Request.Context(), s, id, &req)
	return respond(c, resp, err)
}

func (b *Business) AddService(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.CreateServiceReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := b.BusinessService.AddService(c.Request.Context(), s, id, &req)
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (b *Business) ListRedeemables(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resp, err := b.BusinessService.ListRedeemables(c.Request.Context(), id)
	return respond(c, resp, err)
}

func (b *Business) CreateRedeemable(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.CreateRedeemableReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := b.BusinessService.CreateRedeemable(c.Request.Context(), s, id, &req)
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (b *Business) DeleteRedeemable(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rid, err := pathID(c, "rid")
	if err != nil {
		return err
	}
	if err := b.BusinessService.DeleteRedeemable(c.Request.Context(), s, id, rid); err != nil {
		return bizErr(err)
	}
	response.Success(c, nil)
	return nil
}

// Redeem spends the caller's points on a business reward.
func (b *Business) Redeem(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rid, err := pathID(c, "rid")
	if err != nil {
		return err
	}
	resp, err := b.RedemptionService.RedeemBusiness(c.Request.Context(), s, id, rid, c.GetHeader(idempotencyHeader))
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (b *Business) Appointments(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.ListAppointmentsReq
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	resp, err := b.AppointmentService.ListForBusiness(c.Request.Context(), s, id, &req)
	return respond(c, resp, err)
}

func (b *Business) Reviews(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.CursorReq
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	resp, err := b.ReviewService.ListByBusiness(c.Request.Context(), id, &req)
	return respond(c, resp, err)
}
