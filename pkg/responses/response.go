package responses

import (
	"github.com/gin-gonic/gin"
)

// Response is the uniform JSON envelope of the admin HTTP API.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope. Business error codes ride in
// response.code; HTTP status stays 200.
func Error(c *gin.Context, err error) {
	if appErr := AsAppError(err); appErr != nil {
		c.JSON(200, Response{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	c.JSON(200, Response{
		Code:    CodeInternalError,
		Message: err.Error(),
	})
}
