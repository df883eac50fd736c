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

type Notification struct {
	Config              *config.Config
	NotificationService service.INotificationService
}

func (n *Notification) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/notifications", middleware.Auth([]byte(n.Config.Jwt.Secret)))
	g.GET("", context.Wrap(n.List))
	g.GET("/unread-count", context.Wrap(n.UnreadCount))
	g.POST("/read-all", context.Wrap(n.MarkAllRead))
	g.POST("/:id/read", context.Wrap(n.MarkRead))
}

func (n *Notification) List(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	var req types.CursorReq
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	resp, err := n.NotificationService.List(c.Request.Context(), s, &req)
	return respond(c, resp, err)
}

func (n *Notification) UnreadCount(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	resp, err := n.NotificationService.UnreadCount(c.Request.Context(), s)
	return respond(c, resp, err)
}

func (n *Notification) MarkRead(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := n.NotificationService.MarkRead(c.Request.Context(), s, id); err != nil {
		return bizErr(err)
	}
	response.Success(c, nil)
	return nil
}

func (n *Notification) MarkAllRead(c *gin.Context) error {
	s, err := context.GetSession(c)
	if err != nil {
		return err
	}
	if err := n.NotificationService.MarkAllRead(c.Request.Context(), s); err != nil {
		return bizErr(err)
	}
	response.Success(c, nil)
	return nil
}
