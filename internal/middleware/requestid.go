package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader is the header carrying the request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with a correlation id, reusing the one
// supplied by the client when present. The id is echoed back in the
// response headers so clients can reference it in reports.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(RequestIDHeader, id)
			c.Response().Header().Set(RequestIDHeader, id)
			return next(c)
		}
	}
}
