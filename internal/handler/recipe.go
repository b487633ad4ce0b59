package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ehsanmz/recipe-box/internal/model"
	"github.com/ehsanmz/recipe-box/internal/queue"
	"github.com/ehsanmz/recipe-box/internal/repository"
)

// ActivityPublisher emits a recipe activity event after a successful
// mutation. Failures are ignored by the handlers: event delivery must
// never affect the request outcome.
type ActivityPublisher func(ctx context.Context, event queue.RecipeActivityEvent) error

// RecipeHandler implements the recipe endpoints together with the
// ownership guard that mediates every mutation.
type RecipeHandler struct {
	Recipes *repository.RecipeRepo
	publish ActivityPublisher
}

// NewRecipeHandler constructs a RecipeHandler. The publisher may be nil,
// in which case no activity events are emitted.
func NewRecipeHandler(recipes *repository.RecipeRepo, publish ActivityPublisher) *RecipeHandler {
	if recipes == nil {
		panic("nil repository passed to NewRecipeHandler")
	}
	return &RecipeHandler{Recipes: recipes, publish: publish}
}

// ----- DTOs -----

// recipeReq carries a full or partial recipe payload. Every field is a
// pointer so an update only touches what the client actually sent; both
// PUT and PATCH share these merge semantics. There is deliberately no
// owner field: a client-supplied owner is ignored on create and update.
type recipeReq struct {
	Title       *string  `json:"title"`
	TimeNeeded  *int     `json:"time_needed"`
	Cost        *float64 `json:"cost"`
	Description *string  `json:"description"`
	Link        *string  `json:"link"`
}

// recipeSummary is the list-view serialization of a recipe.
type recipeSummary struct {
	ID         uint64  `json:"id"`
	Title      string  `json:"title"`
	TimeNeeded int     `json:"time_needed"`
	Cost       float64 `json:"cost"`
	Link       string  `json:"link"`
}

// recipeDetail is the detail-view serialization: the summary fields plus
// the description. Neither view ever exposes the owner.
type recipeDetail struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	TimeNeeded  int     `json:"time_needed"`
	Cost        float64 `json:"cost"`
	Description string  `json:"description"`
	Link        string  `json:"link"`
}

func toSummary(rec *model.Recipe) recipeSummary {
	return recipeSummary{ID: rec.ID, Title: rec.Title, TimeNeeded: rec.TimeNeeded, Cost: rec.Cost, Link: rec.Link}
}

func toDetail(rec *model.Recipe) recipeDetail {
	return recipeDetail{ID: rec.ID, Title: rec.Title, TimeNeeded: rec.TimeNeeded, Cost: rec.Cost,
		Description: rec.Description, Link: rec.Link}
}

// validCost accepts amounts representable as DECIMAL(5,2): non-negative,
// below 1000, at most two decimal places.
func validCost(cost float64) bool {
	if cost < 0 || cost >= 1000 {
		return false
	}
	cents := cost * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

// List handles GET /recipes. The unfiltered list is public: reading is
// never restricted, only mutation is.
func (h *RecipeHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Recipes.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]recipeSummary, 0, len(items))
	for _, rec := range items {
		out = append(out, toSummary(rec))
	}
	return c.JSON(http.StatusOK, out)
}

// Mine handles GET /recipes/mine and returns the caller's own recipes.
// The route sits behind the required-auth middleware, so an anonymous
// request is answered there with 401.
func (h *RecipeHandler) Mine(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Recipes.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]recipeSummary, 0, len(items))
	for _, rec := range items {
		out = append(out, toSummary(rec))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /recipes/:id. Recipe details are publicly readable.
func (h *RecipeHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toDetail(rec))
}

// Create handles POST /recipes. The owner is always the authenticated
// caller; an anonymous caller is rejected with 403 before anything is
// stored.
func (h *RecipeHandler) Create(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You would need to register an account to create recipes"})
	}
	var req recipeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.Cost == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost is required"})
	}
	if !validCost(*req.Cost) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost must be between 0 and 999.99 with at most 2 decimals"})
	}

	rec := &model.Recipe{
		UserID: uid,
		Title:  strings.TrimSpace(*req.Title),
		Cost:   *req.Cost,
	}
	if req.TimeNeeded != nil {
		rec.TimeNeeded = *req.TimeNeeded
	}
	if req.Description != nil {
		rec.Description = *req.Description
	}
	if req.Link != nil {
		rec.Link = *req.Link
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Recipes.Create(ctx, rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create recipe"})
	}
	h.emit(c, queue.ActionCreated, rec)
	return c.JSON(http.StatusCreated, toDetail(rec))
}

// Update handles PUT/PATCH /recipes/:id. Only the owner may update, and
// only fields present in the payload are merged; the stored owner and
// creation timestamp never change. A successful merge advances the
// last-modified timestamp, a failed one leaves the row untouched.
func (h *RecipeHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You do not have permission to edit the recipe"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if rec.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You do not have permission to edit the recipe"})
	}

	var req recipeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title must not be empty"})
	}
	if req.Cost != nil && !validCost(*req.Cost) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost must be between 0 and 999.99 with at most 2 decimals"})
	}

	if req.Title != nil {
		rec.Title = strings.TrimSpace(*req.Title)
	}
	if req.TimeNeeded != nil {
		rec.TimeNeeded = *req.TimeNeeded
	}
	if req.Cost != nil {
		rec.Cost = *req.Cost
	}
	if req.Description != nil {
		rec.Description = *req.Description
	}
	if req.Link != nil {
		rec.Link = *req.Link
	}

	if err := h.Recipes.Update(ctx, rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.emit(c, queue.ActionUpdated, rec)
	return c.JSON(http.StatusOK, toDetail(rec))
}

// Delete handles DELETE /recipes/:id. A recipe owned by someone else is
// reported as 404, not 403: a non-owner must not learn that the record
// exists. Update deliberately answers the same situation with 403; the
// mismatch is inherited behavior kept for client compatibility.
func (h *RecipeHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You do not have permission to delete the recipe"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if rec.UserID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
	}

	if err := h.Recipes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.emit(c, queue.ActionDeleted, rec)
	return c.NoContent(http.StatusNoContent)
}

// emit publishes an activity event, ignoring delivery failures.
func (h *RecipeHandler) emit(c echo.Context, action string, rec *model.Recipe) {
	if h.publish == nil {
		return
	}
	_ = h.publish(c.Request().Context(), queue.RecipeActivityEvent{
		Action:     action,
		RecipeID:   rec.ID,
		UserID:     rec.UserID,
		Title:      rec.Title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
