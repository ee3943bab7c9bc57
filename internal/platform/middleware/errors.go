package middleware

import "github.com/labstack/echo/v4"

// errorBody matches the shape echo's default error handler writes, so
// middleware rejections look like handler errors to clients.
type errorBody struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, status int, msg string) error {
	if c.Response().Committed {
		return nil
	}
	return c.JSON(status, errorBody{Message: msg})
}
