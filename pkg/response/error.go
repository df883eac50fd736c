package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

func BadRequest(msg string) *BizError {
	return NewError(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) *BizError {
	return NewError(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *BizError {
	return NewError(http.StatusForbidden, msg)
}

func NotFound(msg string) *BizError {
	return NewError(http.StatusNotFound, msg)
}

func Conflict(msg string) *BizError {
	return NewError(http.StatusConflict, msg)
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
