package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dumichanda/booking-api/internal/auth"
	"github.com/dumichanda/booking-api/internal/config"
	"github.com/dumichanda/booking-api/internal/repository"
	"github.com/dumichanda/booking-api/internal/utils"
)

// AuthHandler bundles dependencies for the account endpoints.  The token
// codec and bcrypt cost arrive at construction time; nothing is read from
// ambient state.
type AuthHandler struct {
	Cfg   config.Config
	Codec *auth.Codec
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, codec *auth.Codec, users *repository.UserRepo) *AuthHandler {
	if codec == nil || users == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Codec: codec, Users: users}
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

// userResp carries the public account fields.  The password hash never
// appears in a response, including the login response.
type userResp struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register handles POST /register: hash the password, create the account.
// A duplicate email is a validation failure (422), matching the contract
// the client already depends on.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, userResp{ID: uid, Name: req.Name, Email: req.Email})
}

// Login handles POST /login: 404 when the email is unknown, 422 when the
// password does not match (and no cookie is set), otherwise the claim is
// signed into the "token" cookie alongside the public account fields.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "incorrect password"})
	}

	token, err := h.Codec.Sign(auth.Claim{AccountID: u.ID, Email: u.Email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Name: u.Name, Email: u.Email})
}

// Profile handles GET /profile.  It is anonymous-tolerant: no cookie means
// a null body, a valid cookie means the public fields re-read from the
// store, and a present-but-invalid cookie is a 401.
func (h *AuthHandler) Profile(c echo.Context) error {
	ck, err := c.Cookie(auth.CookieName)
	if err != nil || ck.Value == "" {
		return c.JSON(http.StatusOK, nil)
	}
	claim, err := h.Codec.Verify(ck.Value)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, claim.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown account"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Name: u.Name, Email: u.Email})
}

// Logout handles POST /logout: expire the bearer cookie.  Always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, true)
}
