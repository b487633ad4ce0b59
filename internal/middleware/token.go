package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ehsanmz/recipe-box/internal/repository"
	"github.com/ehsanmz/recipe-box/internal/utils"
)

// Context keys set by the auth middlewares. Handlers read the caller's
// identity through these; a missing user_id means the caller is anonymous.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// TokenAuth returns an Echo middleware that requires a valid opaque bearer
// token. The raw token from the Authorization header is hashed and looked
// up in the token store; the bound user must still exist and be active.
// Requests without a resolvable identity are rejected with 401.
func TokenAuth(tokens *repository.TokenRepo, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := resolveCaller(c, tokens, users)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			c.Set(ContextUserID, u.ID)
			c.Set(ContextUserEmail, u.Email)
			return next(c)
		}
	}
}

// OptionalTokenAuth resolves the caller's identity when a valid token is
// presented and otherwise lets the request through as anonymous. Routes
// whose authorization decision belongs to the handler (recipe create,
// update, delete) use this so that an anonymous caller can be answered
// with the domain's own error shape instead of a blanket 401.
func OptionalTokenAuth(tokens *repository.TokenRepo, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if u, ok := resolveCaller(c, tokens, users); ok {
				c.Set(ContextUserID, u.ID)
				c.Set(ContextUserEmail, u.Email)
			}
			return next(c)
		}
	}
}

// resolveCaller maps the Authorization header to an active user. Absent,
// malformed or unknown tokens all yield "not ok" rather than an error:
// token verification never distinguishes why a credential failed.
func resolveCaller(c echo.Context, tokens *repository.TokenRepo, users *repository.UserRepo) (userInfo, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return userInfo{}, false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	if raw == "" {
		return userInfo{}, false
	}
	ctx := c.Request().Context()
	userID, err := tokens.Resolve(ctx, utils.HashToken(raw))
	if err != nil {
		return userInfo{}, false
	}
	u, err := users.GetByID(ctx, userID)
	if err != nil || !u.IsActive {
		return userInfo{}, false
	}
	return userInfo{ID: u.ID, Email: u.Email}, true
}

type userInfo struct {
	ID    uint64
	Email string
}
