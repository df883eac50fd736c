package handler

import (
	"Petly/dao"
	"Petly/internal/appointment"
	"Petly/internal/loyalty"
	"Petly/pkg/response"
	"Petly/service"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// bizErr maps service errors to the messages shown to users. Unknown errors
// pass through and become a 500 envelope in context.Wrap.
func bizErr(err error) error {
	if err == nil {
		return nil
	}
	var in *service.InputError
	switch {
	case errors.As(err, &in):
		return response.BadRequest(in.Msg)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, dao.ErrUserNotFound):
		return response.NotFound("No se encontró el recurso solicitado")
	case errors.Is(err, service.ErrForbidden):
		return response.Forbidden("No tienes permiso para esta acción")
	case errors.Is(err, service.ErrEmailTaken):
		return response.Conflict("Este correo ya está registrado")
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.Unauthorized("Correo o contraseña incorrectos")
	case errors.Is(err, service.ErrInProgress):
		return response.Conflict("Tu solicitud anterior todavía se está procesando")
	case errors.Is(err, service.ErrAlreadyReviewed):
		return response.Conflict("Esta cita ya tiene una reseña")
	case errors.Is(err, appointment.ErrInvalidTransition):
		return response.Conflict("La cita no admite esta acción en su estado actual")
	case errors.Is(err, appointment.ErrRecurrence):
		return response.BadRequest("El intervalo de recurrencia no es válido para esta cita")
	case errors.Is(err, loyalty.ErrInsufficientPoints):
		return response.BadRequest("No tienes puntos suficientes")
	case errors.Is(err, loyalty.ErrTierTooLow):
		return response.Forbidden("Tu nivel no permite canjear esta recompensa")
	}
	return err
}

// respond writes data or the mapped error.
func respond(c *gin.Context, data any, err error) error {
	if err != nil {
		return bizErr(err)
	}
	response.Success(c, data)
	return nil
}

func pathID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.BadRequest("Identificador no válido")
	}
	return id, nil
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return response.BadRequest("Datos de la solicitud no válidos: " + err.Error())
	}
	return nil
}

func bindQuery(c *gin.Context, req any) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return response.BadRequest("Parámetros no válidos: " + err.Error())
	}
	return nil
}

const idempotencyHeader = "X-Idempotency-Key"
