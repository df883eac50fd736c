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

type Pet struct {
	Config     *config.Config
	PetService service.IPetService
}

func (p *Pet) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/pets", middleware.Auth([]byte(p.Config.Jwt.Secret)))
	g.GET("", context.Wrap(p.List))
	g.POST("", context.Wrap(p.Create))
	g.GET("/:id", context.Wrap(p.Get))
	g.PATCH("/:id", context.Wrap(p.Update))
	g.DELETE("/:id", context.Wrap(p.Delete))
	g.POST("/:id/photo", context.Wrap(p.UploadPhoto))
}

func (p *Pet) List(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	resp, err := p.PetService.List(c.Request.Context(), s)
	return respond(c, resp, err)
}

func (p *Pet) Create(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	var req types.CreatePetReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := p.PetService.Create(c.Request.Context(), s, &req)
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}

func (p *Pet) Get(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resp, err := p.PetService.Get(c.Request.Context(), s, id)
	return respond(c, resp, err)
}

func (p *Pet) Update(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdatePetReq
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := p.PetService.Update(c.Request.Context(), s, id, &req, c.GetHeader(idempotencyHeader))
	return respond(c, resp, err)
}

func (p *Pet) Delete(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := p.PetService.Delete(c.Request.Context(), s, id); err != nil {
		return bizErr(err)
	}
	response.Success(c, nil)
	return nil
}

// UploadPhoto takes the multipart field "photo".
func (p *Pet) UploadPhoto(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	header, err := c.FormFile("photo")
	if err != nil {
		return response.BadRequest("Falta el campo photo")
	}
	resp, err := p.PetService.UploadPhoto(c.Request.Context(), s, id, header)
	return respond(c, resp, err)
}
