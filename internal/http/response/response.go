package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/studyweave/studyweave-backend/internal/domain"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
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
	c.JSON(http.StatusOK, payload)
}

// RespondFailure maps a typed failure kind to a status; anything untyped is a
// plain 500.
func RespondFailure(c *gin.Context, err error) {
	kind := types.KindOf(err)
	status := http.StatusInternalServerError
	code := "internal_error"
	switch kind {
	case types.KindNotFound:
		status, code = http.StatusNotFound, "not_found"
	case types.KindAccessDenied:
		status, code = http.StatusForbidden, "access_denied"
	case types.KindUnavailable:
		status, code = http.StatusGone, "unavailable"
	case types.KindNetwork:
		status, code = http.StatusBadGateway, "catalog_unreachable"
	case types.KindInvalidRelation:
		status, code = http.StatusConflict, "invalid_relation"
	case types.KindInvalidReference:
		status, code = http.StatusBadRequest, "invalid_reference"
	}
	RespondError(c, status, code, err)
}
