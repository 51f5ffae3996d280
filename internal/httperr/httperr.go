package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond traduz um erro de negócio para a resposta HTTP correspondente.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !asBusiness(err, &be) {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch be.Kind {
	case KindValidation:
		BadRequest(c, be.Code, be.Message)
	case KindNotFound:
		NotFound(c, be.Code, be.Message)
	case KindConflict, KindInsufficientStock:
		Conflict(c, be.Code, be.Message)
	default:
		Internal(c, be.Code, be.Message)
	}
}
