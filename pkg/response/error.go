package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chapternet/directory-api/pkg/apperr"
)

// WriteError maps a service-layer error onto an HTTP status and writes the
// envelope. Unknown errors become a generic 500 so internals never leak.
func WriteError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	var details any

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
		msg = "validation failed"
		details = fieldDetails(err)
	case apperr.KindConflict:
		status = http.StatusConflict
		msg = "conflict"
		details = fieldDetails(err)
	case apperr.KindNotFound:
		status = http.StatusNotFound
		msg = "not found"
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
		msg = "unauthorized"
	case apperr.KindForbidden:
		status = http.StatusForbidden
		msg = "forbidden"
	case apperr.KindTransient:
		status = http.StatusServiceUnavailable
		msg = "temporarily unavailable"
	}

	ctx.JSON(status, Error[any](ctx, status, msg, details))
}

func fieldDetails(err error) any {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return nil
	}
	if e.Field == "" {
		return e.Message()
	}
	return map[string]string{e.Field: e.Message()}
}
