package http

import "github.com/labstack/echo/v4"

const (
	statusSuccess = "success"
	statusError   = "error"
	statusFailed  = "failed"
)

// Envelope is the uniform wire format shared by every API operation.
type Envelope struct {
	Status   string `json:"status"`
	HTTPCode int    `json:"http_code"`
	Message  string `json:"message"`
	Data     any    `json:"data"`
}

func respond(c echo.Context, status string, code int, message string, data any) error {
	return c.JSON(code, Envelope{
		Status:   status,
		HTTPCode: code,
		Message:  message,
		Data:     data,
	})
}

func respondSuccess(c echo.Context, code int, message string, data any) error {
	return respond(c, statusSuccess, code, message, data)
}

func respondError(c echo.Context, code int, message string, data any) error {
	return respond(c, statusError, code, message, data)
}

func respondFailed(c echo.Context, code int, message string) error {
	return respond(c, statusFailed, code, message, nil)
}
