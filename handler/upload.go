package handler

import (
	"Petly/config"
	"Petly/middleware"
	"Petly/pkg/context"
	"Petly/pkg/response"
	"Petly/service"

	"github.com/gin-gonic/gin"
)

var uploadFolders = map[string]bool{
	"uploads":    true,
	"avatars":    true,
	"businesses": true,
}

type Upload struct {
	Config        *config.Config
	UploadService service.IUploadService
}

func (u *Upload) RegisterRouter(r gin.IRouter) {
	r.POST("/v1/uploads", middleware.Auth([]byte(u.Config.Jwt.Secret)), context.Wrap(u.UploadImage))
}

// UploadImage stores the multipart field "image" under ?folder= (default uploads).
func (u *Upload) UploadImage(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	folder := c.DefaultQuery("folder", "uploads")
	if !uploadFolders[folder] {
		return response.BadRequest("Carpeta no válida")
	}
	header, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest("Falta el campo image")
	}
	resp, err := u.UploadService.UploadImage(c.Request.Context(), s.UserID, folder, header)
	if err != nil {
		return bizErr(err)
	}
	response.Created(c, resp)
	return nil
}
