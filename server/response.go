package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/iiTONELOC/web-app-auth-server/errors"
)

// Response is the envelope every API reply uses: the HTTP status repeated
// in the body, an error slot (null on success), and the payload. The error
// slot holds either a message string or, for validation failures, the
// per-field report itself.
type Response struct {
	Status int `json:"status"`
	Error  any `json:"error"`
	Data   any `json:"data"`
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Status: http.StatusOK, Data: data})
}

// RespondCreated sends a 201 response wrapping data.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Status: http.StatusCreated, Data: data})
}

// RespondWithError inspects err: an *apperrors.AppError derives the status
// and message automatically, anything else becomes a generic 500. A
// validation failure's per-field report replaces the message in the error
// slot; data stays null on every failure.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}

	resp := Response{Status: appErr.HTTPStatus, Error: appErr.Message}
	if fields, ok := appErr.Details["fields"]; ok {
		resp.Error = fields
	}
	c.JSON(appErr.HTTPStatus, resp)
}
