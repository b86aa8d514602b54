package httpHandler

import (
	"vitalmonitor/validation"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0"

type errorBody struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Errors  validation.List `json:"errors,omitempty"`
}

// respondData writes the success envelope.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"apiVersion": apiVersion,
		"data":       data,
	})
}

// respondDeleted writes the deletion envelope. Deletes report success
// even when the id was already absent.
func respondDeleted(c *gin.Context) {
	c.JSON(200, gin.H{
		"apiVersion": apiVersion,
		"deleted":    true,
	})
}

// respondError writes the error envelope, optionally carrying the
// aggregated validation entries.
func respondError(c *gin.Context, status int, message string, errs ...validation.List) {
	body := errorBody{Code: status, Message: message}
	if len(errs) > 0 && errs[0].HasErrors() {
		body.Errors = errs[0]
	}
	c.JSON(status, gin.H{
		"apiVersion": apiVersion,
		"error":      body,
	})
}
