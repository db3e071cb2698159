package middleware

import (
	"github.com/labstack/echo/v4"
)

// apiError mirrors the response envelope used by the handlers so that
// middleware failures look the same on the wire.
type apiError struct {
	Message string `json:"message"`
}

type envelope struct {
	Data  interface{} `json:"data"`
	Error *apiError   `json:"error"`
}

func errorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Error: &apiError{Message: message}})
}
