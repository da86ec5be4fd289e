package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moviecatalog-backend/internal/shared/middleware"
	"moviecatalog-backend/internal/shared/response"
	"moviecatalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", healthCheckHandler(c))

	setupMovieRoutes(router, c)
	setupCategoryRoutes(router, c)

	return router
}

func setupMovieRoutes(router *gin.Engine, c *container.Container) {
	movies := router.Group("/movies")
	{
		movies.GET("", c.MovieHandler.GetAll)
		movies.GET("/:id", c.MovieHandler.GetByID)
		movies.POST("", c.MovieHandler.Create)
		movies.PUT("", c.MovieHandler.Update)
		movies.DELETE("/:id", c.MovieHandler.Delete)
	}
}

func setupCategoryRoutes(router *gin.Engine, c *container.Container) {
	categories := router.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.GetAll)
		categories.GET("/:id", c.CategoryHandler.GetByID)
		categories.POST("", c.CategoryHandler.Create)
		categories.PUT("", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		message := "OK"
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
			message = "Service unavailable"
		}

		response.Write(ctx, status, message, gin.H{
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
