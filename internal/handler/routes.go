package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pennywise-app/pennywise-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, session *middleware.SessionMiddleware, limiter *middleware.RateLimiter, authHandler *AuthHandler, categoryHandler *CategoryHandler, expenseHandler *ExpenseHandler, incomeHandler *IncomeHandler) {
	api := e.Group("/api")

	// Public auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Everything else requires a session
	authed := api.Group("", session.Authenticate(), middleware.RateLimitMiddleware(limiter))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	categories := authed.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	expenses := authed.Group("/expenses")
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	incomes := authed.Group("/incomes")
	incomes.GET("", incomeHandler.List)
	incomes.POST("", incomeHandler.Create)
	incomes.PUT("/:id", incomeHandler.Update)
	incomes.DELETE("/:id", incomeHandler.Delete)
}
