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

type Appointment struct {
	Config             *config.Config
	AppointmentService service.IAppointmentService
	ReviewService      service.IReviewService
}

func (a *Appointment) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/appointments", middleware.Auth([]byte(a.Config.Jwt.Secret)))
	g.POST("", context.Wrap(a.Book))
	g.GET("", context.Wrap(a.List))
	g.GET("/:id", context.Wrap(a.Get))
	g.POST("/:id/confirm", context.Wrap(a.Confirm))
	g.POST("/:id/complete", context.Wrap(a.Complete))
	g.POST("/:id/cancel", context.Wrap(a.Cancel))
	g.POST("/:id/request-review", context.Wrap(a.RequestReview))
	g.POST("/:id/review", context.Wrap(a.SubmitReview))

	// the review link in e-mails is opened before login
	r.GET("/v1/reviews/token/:token", context.Wrap(a.ReviewToken))
}

// Book takes an optional X-Idempotency-Key; a replay returns the first booking.
func (a *Appointment) Book(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	var req types.BookReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := a.AppointmentService.Book(c.Request.Context(), s, &req, c.GetHeader(idempotencyHeader))
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (a *Appointment) List(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	var req types.ListAppointmentsReq
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	resp, err := a.AppointmentService.List(c.Request.Context(), s, &req)
	return respond(c, resp, err)
}

func (a *Appointment) Get(c *gin.Context) error {
	s, id, err := a.target(c)
	if err != nil {
		return err
	}
	resp, err := a.AppointmentService.Get(c.Request.Context(), s, id)
	return respond(c, resp, err)
}

func (a *Appointment) Confirm(c *gin.Context) error {
	s, id, err := a.target(c)
	if err != nil {
		return err
	}
	resp, err := a.AppointmentService.Confirm(c.Request.Context(), s, id)
	return respond(c, resp, err)
}

func (a *Appointment) Complete(c *gin.Context) error {
	s, id, err := a.target(c)
	if err != nil {
		return err
	}
	resp, err := a.AppointmentService.Complete(c.Request.Context(), s, id)
	return respond(c, resp, err)
}

func (a *Appointment) Cancel(c *gin.Context) error {
	s, id, err := a.target(c)
	if err != nil {
		return err
	}
	resp, err := a.AppointmentService.Cancel(c.Request.Context(), s, id)
	return respond(c, resp, err)
}

func (a *Appointment) RequestReview(c *gin.Context) error {
	s, id, err := a.target(c)
	if err != nil {
		return err
	}
	resp, err := a.AppointmentService.RequestReview(c.Request.Context(), s, id)
	return respond(c, resp, err)
}

func (a *Appointment) SubmitReview(c *gin.Context) error {
	s, id, err := a.target(c)
	if err != nil {
		return err
	}
	var req types.SubmitReviewReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := a.ReviewService.Submit(c.Request.Context(), s, id, &req)
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (a *Appointment) ReviewToken(c *gin.Context) error {
	resp, err := a.ReviewService.ResolveToken(c.Request.Context(), c.Param("token"))
	return respond(c, resp, err)
}

func (a *Appointment) target(c *gin.Context) (*types.Session, uint64, error) {
	s, err := context.GetSession(c)
	if err != nil {
		return nil, 0, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, 0, err
	}
	return s, id, nil
}
