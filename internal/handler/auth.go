package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amirulz/cinema-live/internal/config"
	"github.com/amirulz/cinema-live/internal/middleware"
	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/repository"
	"github.com/amirulz/cinema-live/internal/utils"
)

// UserStore is the account lookup surface the auth endpoints need.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TokenStore is the refresh-token surface the auth endpoints need.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// AuthHandler serves login, token refresh, logout and the identity echo.
// Accounts are the fixed demo logins seeded at startup; there is no
// self-registration surface.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, users UserStore, tokens TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// userPayload is the identity block clients keep in their session state.
type userPayload struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// Login verifies credentials and issues an access/refresh token pair. A
// wrong email and a wrong password answer identically so the endpoint
// does not leak which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	return h.issueTokens(c, u.ID, u.Email, u.Role, u.Name)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. An expired, revoked or unknown token answers
// 401; a token that was already rotated away additionally revokes every
// session the account has, since its reappearance means it was copied.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}

	ctx := c.Request().Context()
	hash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshReuse) {
			_ = h.Tokens.RevokeAllForUser(ctx, userID)
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil || !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return h.issueTokens(c, u.ID, u.Email, u.Role, u.Name)
}

// Logout revokes the presented refresh token. The access token stays
// valid until its short expiry; clients simply drop it.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me echoes the identity carried by the access token.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user": userPayload{
		Email: middleware.Email(c),
		Role:  middleware.Role(c),
		Name:  middleware.Name(c),
	}})
}

func (h *AuthHandler) issueTokens(c echo.Context, userID uint64, email, role, name string) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, email, role, name, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if err := h.Tokens.StoreRefresh(c.Request().Context(), userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  access.Token,
		"expires_at":    access.Exp,
		"refresh_token": refresh.Raw,
		"user":          userPayload{Email: email, Role: role, Name: name},
	})
}
