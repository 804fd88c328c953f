package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/notes-api/internal/config"
	"github.com/iliyamo/notes-api/internal/model"
	"github.com/iliyamo/notes-api/internal/repository"
	"github.com/iliyamo/notes-api/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
}

func NewAuthHandler(cfg config.Config, users repository.UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResp is the success body for both register and login.
type tokenResp struct {
	Success   bool   `json:"success"`
	AuthToken string `json:"authToken"`
}

// errResp is the single-message failure body. Field order matters for
// the invalid-credentials contract: both "unknown email" and "wrong
// password" must serialize to the exact same bytes.
type errResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// errsResp carries every violated validation rule, in rule order.
type errsResp struct {
	Success bool               `json:"success"`
	Errors  []model.FieldError `json:"errors"`
}

// CreateUser handles POST /api/auth/createUser. Validation failures
// report only the first violated rule; a duplicate email is a 400
// conflict. On success the new user's token is returned immediately.
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errResp{Error: "invalid request body"})
	}
	if verrs := model.ValidateRegister(req.Name, req.Email, req.Password); len(verrs) > 0 {
		return c.JSON(http.StatusBadRequest, errResp{Error: verrs[0].Message})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		c.Logger().Errorf("hash password: %v", err)
		return c.JSON(http.StatusInternalServerError, errResp{Error: "Registration failed"})
	}

	uid, err := h.Users.Create(ctx, req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, errResp{Error: "User with this email already exists"})
		}
		c.Logger().Errorf("create user: %v", err)
		return c.JSON(http.StatusInternalServerError, errResp{Error: "Registration failed"})
	}

	token, err := utils.NewAuthToken(h.Cfg.JWTSecret, uid)
	if err != nil {
		c.Logger().Errorf("sign token: %v", err)
		return c.JSON(http.StatusInternalServerError, errResp{Error: "Registration failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{Success: true, AuthToken: token})
}

// Login handles POST /api/auth/login. Validation failures report every
// violated rule. An unknown email and a failed password comparison
// both answer with an identical body so the caller cannot tell which
// check failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errResp{Error: "invalid request body"})
	}
	if verrs := model.ValidateLogin(req.Email, req.Password); len(verrs) > 0 {
		return c.JSON(http.StatusBadRequest, errsResp{Errors: verrs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, errResp{Error: "Invalid credentials"})
		}
		c.Logger().Errorf("get user by email: %v", err)
		return c.JSON(http.StatusInternalServerError, errResp{Error: "Internal server error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, errResp{Error: "Invalid credentials"})
	}

	token, err := utils.NewAuthToken(h.Cfg.JWTSecret, u.ID)
	if err != nil {
		c.Logger().Errorf("sign token: %v", err)
		return c.JSON(http.StatusInternalServerError, errResp{Error: "Internal server error"})
	}
	return c.JSON(http.StatusOK, tokenResp{Success: true, AuthToken: token})
}

// GetUser handles POST /api/auth/getuser (protected). It returns the
// caller's record minus the password hash; the token may outlive the
// user, in which case a 404 is returned.
func (h *AuthHandler) GetUser(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("get user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, u)
}
