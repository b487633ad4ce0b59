package handler // handler defines http handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ehsanmz/recipe-box/internal/middleware"
)

// callerID extracts the authenticated user's id from the echo context. The
// second return value is false for anonymous callers. The auth middlewares
// store the id as uint64, but other numeric shapes are tolerated so tests
// can inject identities directly.
func callerID(c echo.Context) (uint64, bool) {
	v := c.Get(middleware.ContextUserID)
	switch t := v.(type) {
	case uint64:
		return t, true
	case int:
		return uint64(t), true
	case int64:
		return uint64(t), true
	case float64:
		return uint64(t), true
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
