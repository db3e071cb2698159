package handler

import (
	"time"

	"github.com/labstack/echo/v4"
)

// APIError is the error half of the response envelope.
type APIError struct {
	Message string `json:"message"`
}

// Envelope wraps every response body: exactly one of Data and Error is set.
type Envelope struct {
	Data  interface{} `json:"data"`
	Error *APIError   `json:"error"`
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Data: data})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Error: &APIError{Message: message}})
}

// parseDate accepts both plain dates and full timestamps, the two shapes the
// web client sends.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
