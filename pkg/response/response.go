package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API answer.
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code: 0,
		Msg:  "ok",
		Data: data,
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Code: 0,
		Msg:  "ok",
		Data: data,
	})
}

// Fail writes a business failure; codes in the HTTP error range double as the status.
func Fail(c *gin.Context, code int, msg string) {
	status := http.StatusOK
	if code >= 400 && code < 600 {
		status = code
	}
	c.JSON(status, Response{
		Code: code,
		Msg:  msg,
	})
}
