package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InsertAck acknowledges a persisted record.
type InsertAck struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// TokenBody carries an issued session token.
type TokenBody struct {
	Token string `json:"token"`
}

// Status writes a bare status with an empty body.
func Status(ctx *gin.Context, status int) {
	ctx.Status(status)
	ctx.Writer.WriteHeaderNow()
}

// Abort is Status for middleware: it also stops the handler chain.
func Abort(ctx *gin.Context, status int) {
	ctx.AbortWithStatus(status)
}

// Success writes data as JSON.
func Success[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// Error writes a single descriptive message as a JSON string.
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, message)
}

// Errors writes a list of violation messages.
func Errors(ctx *gin.Context, status int, messages []string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, messages)
}
