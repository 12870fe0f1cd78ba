package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeValidationFailed   = 40001
	CodeTitleExists        = 40003
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeEntryNotFound      = 40401
	CodeInternalServer     = 50000
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

// FormErrors re-presents a submitted form with its field errors. The status
// is 200 on purpose: the request was handled, the submission was not
// accepted.
func FormErrors(c *gin.Context, fields interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Data:    gin.H{"errors": fields},
	})
}
