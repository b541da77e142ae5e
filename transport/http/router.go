// Package http exposes the auth engine over a gin router.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/JinhyeokFang/capstone"
)

// NewRouter wires the auth routes. Refresh and logout read the refresh
// token from its HttpOnly cookie; /auth/me requires a bearer access token.
func NewRouter(engine *capstone.Engine, cfg Config) *gin.Engine {
	router := gin.Default()
	router.Use(RequestID())

	handlers := NewAuthHandlers(engine, cfg)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", handlers.SignUp)
		auth.POST("/login", handlers.Login)
		auth.POST("/refresh", handlers.Refresh)
		auth.POST("/logout", handlers.Logout)
		auth.GET("/me", BearerAuth(engine), handlers.Me)
	}

	return router
}
