package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/ehsanmz/recipe-box/internal/handler"
	"github.com/ehsanmz/recipe-box/internal/middleware"
	"github.com/ehsanmz/recipe-box/internal/repository"
)

// RegisterUser registers the account endpoints. Registration and token
// issuance are public (behind the rate limiter); the /users/me pair
// requires a valid bearer token and answers 401 otherwise.
func RegisterUser(e *echo.Echo, h *handler.UserHandler, limiter echo.MiddlewareFunc, tokens *repository.TokenRepo, users *repository.UserRepo) {
	g := e.Group("/users")
	g.POST("", h.Register, limiter)
	g.POST("/token", h.Token, limiter)

	me := g.Group("/me", middleware.TokenAuth(tokens, users))
	me.GET("", h.Me)
	me.PATCH("", h.UpdateMe)
}
