package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"monster-backend/internal/config"
	"monster-backend/internal/shared/middleware"
	"monster-backend/pkg/container"
)

// SetupRouter mounts the middleware chain and the API route table.
// Authorization middleware runs before any request body is parsed, so an
// actor without the required permission never reaches validation.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	v1.GET("/health", healthHandler(c))

	auth := middleware.Auth(c.JWTManager)

	monsters := v1.Group("/monsters")
	{
		monsters.POST("", auth, middleware.Require(config.PermCreateMonster), c.MonsterHandler.CreateMonster)
		monsters.GET("", c.MonsterHandler.ListMonsters)
		monsters.GET("/:monsterId", c.MonsterHandler.GetMonster)
		monsters.PUT("/:monsterId", auth, middleware.Require(config.PermManageMonsters), c.MonsterHandler.UpdateMonster)
		monsters.PATCH("/:monsterId", auth, middleware.Require(config.PermGetMonsterGold), c.MonsterHandler.GetMonsterGold)
		monsters.DELETE("/:monsterId", auth, middleware.Require(config.PermManageMonsters), c.MonsterHandler.DeleteMonster)

		monsters.PUT("/:monsterId/like", auth, c.MonsterHandler.LikeMonster)
		monsters.GET("/:monsterId/like", auth, c.MonsterHandler.GetMonstersLikes)
	}

	users := v1.Group("/users")
	{
		users.GET("/:userId/gold", auth, c.UserHandler.ListUserGold)
	}

	return router
}

// healthHandler reports the health of the API and its dependencies.
// Redis being down degrades the response but does not fail it.
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
		}

		status := http.StatusOK

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			health["status"] = "unhealthy"
			health["database"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			health["database"] = "ok"
		}

		if c.Cache == nil {
			health["cache"] = "disabled"
		} else if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			health["cache"] = "unavailable"
		} else {
			health["cache"] = "ok"
		}

		ctx.JSON(status, health)
	}
}
