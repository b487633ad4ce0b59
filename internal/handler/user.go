package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ehsanmz/recipe-box/internal/config"
	"github.com/ehsanmz/recipe-box/internal/repository"
	"github.com/ehsanmz/recipe-box/internal/utils"
)

// minPasswordLen is the minimum accepted password length for registration
// and password changes.
const minPasswordLen = 5

// UserHandler bundles dependencies for account and token endpoints.
type UserHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type tokenReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateMeReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

// userResp is the only shape an account is ever serialized to. It has no
// field for the password or its hash.
type userResp struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// validateRegistration checks registration input ahead of any store
// mutation. It returns a client-facing message and false on rejection.
func validateRegistration(email, password string) (string, bool) {
	if email == "" {
		return "email is required", false
	}
	if len(password) < minPasswordLen {
		return "password must be at least 5 characters", false
	}
	return "", true
}

// Register handles POST /users: self-service account creation.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := repository.NormalizeEmail(req.Email)
	if msg, ok := validateRegistration(email, req.Password); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err := h.Users.Create(ctx, email, req.Password, req.FirstName, req.LastName, false, false, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, userResp{
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
}

// Token handles POST /users/token: exchanges valid credentials for a fresh
// opaque bearer token. The failure response never says whether the email
// exists, the password mismatched or the account is inactive.
func (h *UserHandler) Token(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := repository.NormalizeEmail(req.Email)
	// An empty password must fail here, never be treated as "no password".
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Authenticate(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unable to authenticate with the provided credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	raw, err := utils.NewAuthToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	if err := h.Tokens.Store(ctx, u.ID, utils.HashToken(raw)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": raw})
}

// Me handles GET /users/me for the authenticated account.
func (h *UserHandler) Me(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, userResp{Email: u.Email, FirstName: u.FirstName, LastName: u.LastName})
}

// UpdateMe handles PATCH /users/me. Only the name fields and the password
// are updatable; the password is re-hashed and must still satisfy the
// minimum length. The email is not updatable and is ignored if supplied.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req updateMeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Password != nil && len(*req.Password) < minPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 5 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	firstName, lastName := u.FirstName, u.LastName
	if req.FirstName != nil {
		firstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		lastName = strings.TrimSpace(*req.LastName)
	}
	if err := h.Users.UpdateProfile(ctx, uid, firstName, lastName); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if req.Password != nil {
		if err := h.Users.UpdatePassword(ctx, uid, *req.Password, h.Cfg.BcryptCost); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	return c.JSON(http.StatusOK, userResp{Email: u.Email, FirstName: firstName, LastName: lastName})
}
