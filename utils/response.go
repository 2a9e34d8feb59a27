package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/devlog/goblog/apperror"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, 200, 0, "success", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// Fail maps a domain error to its boundary response by kind, never by
// message content. Unknown errors are logged and surfaced as internal.
func Fail(ctx *gin.Context, err error) {
	ae := apperror.From(err)
	if ae.Kind == apperror.Internal {
		if Sugar != nil {
			Sugar.Errorw("internal error", "path", ctx.FullPath(), "error", ae.Unwrap())
		}
	}
	resp := JSONResponse{
		Code:    ae.Code(),
		Message: ae.Message,
	}
	if len(ae.Fields) > 0 {
		resp.Fields = ae.Fields
	}
	ctx.JSON(ae.Status(), resp)
}
