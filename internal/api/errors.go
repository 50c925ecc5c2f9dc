package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/bytepair/internal/bpe"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "", "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "", "")
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

// writeModelError maps tokenizer errors to HTTP responses.
func writeModelError(c *echo.Context, err error, param string) error {
	var unknown *bpe.UnknownTokenError
	switch {
	case errors.As(err, &unknown):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), param, "unknown_token")
	case errors.Is(err, bpe.ErrNotTrained):
		return writeError(c, http.StatusServiceUnavailable, "server_error", err.Error(), "", "model_not_trained")
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, bpe.ErrInvalidInput):
		return writeBadRequest(c, err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
	}
}
