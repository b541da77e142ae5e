package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JinhyeokFang/capstone"
)

const refreshCookieName = "refreshToken"

// Config tunes the HTTP surface.
type Config struct {
	// RefreshCookieMaxAge bounds the refresh cookie lifetime. It should
	// match the engine's refresh TTL; zero falls back to 7 days.
	RefreshCookieMaxAge time.Duration
	// CookieSecure marks the refresh cookie Secure. Off by default so
	// local setups without TLS keep working.
	CookieSecure bool
}

// AuthHandlers serves the auth endpoints.
type AuthHandlers struct {
	engine *capstone.Engine
	config Config
}

// NewAuthHandlers creates handlers around a built engine.
func NewAuthHandlers(engine *capstone.Engine, cfg Config) *AuthHandlers {
	if cfg.RefreshCookieMaxAge <= 0 {
		cfg.RefreshCookieMaxAge = 7 * 24 * time.Hour
	}
	return &AuthHandlers{engine: engine, config: cfg}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps engine sentinels onto stable machine codes. Anything
// unmapped is an infrastructure failure and stays opaque to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, capstone.ErrUserNotFound):
		c.JSON(http.StatusNotFound, errorBody{Code: "USER_NOT_FOUND", Message: "user not found"})
	case errors.Is(err, capstone.ErrPasswordMismatch):
		c.JSON(http.StatusUnauthorized, errorBody{Code: "PASSWORD_MISMATCH", Message: "password mismatch"})
	case errors.Is(err, capstone.ErrUserInactive):
		c.JSON(http.StatusForbidden, errorBody{Code: "USER_INACTIVE", Message: "user inactive"})
	case errors.Is(err, capstone.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, errorBody{Code: "EMAIL_ALREADY_EXISTS", Message: "email already exists"})
	case errors.Is(err, capstone.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, errorBody{Code: "INTERNAL_ERROR", Message: "internal error"})
	}
}

func (h *AuthHandlers) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(refreshCookieName, token,
		int(h.config.RefreshCookieMaxAge/time.Second), "/", "", h.config.CookieSecure, true)
}

func (h *AuthHandlers) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.config.CookieSecure, true)
}

// SignUp registers a new account. The refresh token travels only in an
// HttpOnly cookie; the body carries the access token.
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_REQUEST", Message: "invalid request body"})
		return
	}

	pair, err := h.engine.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusCreated, gin.H{"accessToken": pair.AccessToken})
}

// Login authenticates an email/password pair.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "INVALID_REQUEST", Message: "invalid request body"})
		return
	}

	pair, err := h.engine.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
}

// Refresh mints a new access token from the refresh cookie.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil || token == "" {
		writeError(c, capstone.ErrUnauthorized)
		return
	}

	access, err := h.engine.Refresh(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

// Logout revokes the refresh token from the cookie and clears the cookie.
// A request without a cookie is already logged out; a cookie carrying an
// invalid or expired token is rejected like any other bad credential.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
		return
	}

	if err := h.engine.Logout(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the account resolved by the auth middleware.
func (h *AuthHandlers) Me(c *gin.Context) {
	account := currentAccount(c)
	if account == nil {
		writeError(c, capstone.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    account.ID,
		"name":  account.Name,
		"email": account.Email,
	})
}
