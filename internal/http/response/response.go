package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type DataEnvelope struct {
	Data any `json:"data"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, DataEnvelope{Data: payload})
}

// Respond writes the data envelope with a caller-chosen status, for
// endpoints that report partial success.
func Respond(c *gin.Context, status int, payload any) {
	c.JSON(status, DataEnvelope{Data: payload})
}
