package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/ehsanmz/recipe-box/internal/handler"
	"github.com/ehsanmz/recipe-box/internal/middleware"
	"github.com/ehsanmz/recipe-box/internal/repository"
)

// RegisterRecipe registers the recipe endpoints. Reads are public.
// Mutations sit behind the optional-auth middleware: the handlers own the
// authorization decision, so an anonymous mutation is answered with the
// domain's 403 instead of a blanket 401. Only /recipes/mine demands a
// token outright.
func RegisterRecipe(e *echo.Echo, h *handler.RecipeHandler, tokens *repository.TokenRepo, users *repository.UserRepo) {
	optional := middleware.OptionalTokenAuth(tokens, users)
	required := middleware.TokenAuth(tokens, users)

	g := e.Group("/recipes")
	g.GET("", h.List)
	g.POST("", h.Create, optional)
	g.GET("/mine", h.Mine, required)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update, optional)
	g.PATCH("/:id", h.Update, optional)
	g.DELETE("/:id", h.Delete, optional)
}
