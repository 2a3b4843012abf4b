package server

import (
	"github.com/labstack/echo/v4"

	"example.com/fresh-pantry/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	itemHandler *handlers.ItemHandler,
	scanHandler *handlers.ScanHandler,
	recipeHandler *handlers.RecipeHandler,
	statsHandler *handlers.StatsHandler,
	aiHandler *handlers.AIHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", healthHandler.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)
	authGroup.PUT("/preferences", authHandler.UpdatePreferences, authMiddleware)

	items := api.Group("/items", authMiddleware)
	items.GET("", itemHandler.List)
	items.POST("", itemHandler.Create)
	items.GET("/export/json", itemHandler.ExportJSON)
	items.GET("/export/csv", itemHandler.ExportCSV)
	items.GET("/:itemId", itemHandler.Get)
	items.PUT("/:itemId", itemHandler.Update)
	items.DELETE("/:itemId", itemHandler.Delete)

	scan := api.Group("/scan", authMiddleware)
	scan.POST("", scanHandler.Analyze, aiRateLimiter)
	scan.POST("/save", scanHandler.Save)

	recipes := api.Group("/recipes", authMiddleware)
	recipes.POST("/generate", recipeHandler.Generate, aiRateLimiter)
	recipes.GET("/latest", recipeHandler.Latest)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/pantry", statsHandler.Pantry)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)
	notifications.GET("/plan", notificationHandler.Plan)

	aiGroup := api.Group("/ai", authMiddleware)
	aiGroup.GET("/models", aiHandler.ListModels)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/ai-requests", adminHandler.ListAIRequests)
}
