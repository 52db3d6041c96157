package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"microposts-backend/internal/shared/middleware"
	"microposts-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPostRoutes(v1, c)
		setupProfileRoutes(v1, c)
	}

	return router
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	{
		posts.GET("", c.PostHandler.ListPosts)
		posts.GET("/:id", c.PostHandler.GetPost)
		posts.POST("", middleware.AuthMiddleware(c.JWTManager), c.PostHandler.CreatePost)
	}
}

// ========================================
// PROFILE ROUTES
// ========================================
func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	profiles := v1.Group("/profiles")
	{
		profiles.GET("/:username", c.ProfileHandler.GetProfile)
		profiles.GET("/:username/posts", c.ProfileHandler.ListProfilePosts)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services := appCtx.HealthCheck(ctx)

		status := "ok"
		code := http.StatusOK
		for _, s := range services {
			if s != "ok" {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		})
	}
}
