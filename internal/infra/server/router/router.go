// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/money-saver/backend/internal/integration/entrypoint/controller"
	"github.com/money-saver/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	userController    *controller.UserController
	savingsController *controller.SavingsController
	adminController   *controller.AdminController
	syncRateLimiter   *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	userController *controller.UserController,
	savingsController *controller.SavingsController,
	adminController *controller.AdminController,
	syncRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:  healthController,
		userController:    userController,
		savingsController: savingsController,
		adminController:   adminController,
		syncRateLimiter:   syncRateLimiter,
		authMiddleware:    authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes: sync is authenticated by the identity token itself
		if r.userController != nil && r.authMiddleware != nil {
			auth := v1.Group("/auth")
			auth.Use(r.authMiddleware.Authenticate())
			{
				if r.syncRateLimiter != nil {
					auth.POST("/sync", r.syncRateLimiter.Middleware(), r.userController.Sync)
				} else {
					auth.POST("/sync", r.userController.Sync)
				}
			}

			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.Me)
				users.PATCH("/me/preferences", r.userController.UpdatePreferences)
			}
		}

		// Saving plan routes (require authentication)
		if r.savingsController != nil && r.authMiddleware != nil {
			plans := v1.Group("/savings-plans")
			plans.Use(r.authMiddleware.Authenticate())
			{
				plans.POST("", r.savingsController.Create)
				plans.GET("", r.savingsController.List)
				plans.GET("/stats", r.savingsController.UserStats)
				plans.GET("/:id", r.savingsController.Get)
				plans.PATCH("/:id", r.savingsController.Update)
				plans.DELETE("/:id", r.savingsController.Delete)
				plans.GET("/:id/stats", r.savingsController.PlanStats)
				plans.POST("/:id/weekly-amounts", r.savingsController.AddWeeklyAmounts)
				plans.PATCH("/:id/weekly-amounts/:weekId", r.savingsController.UpdateWeeklyAmount)
			}
		}

		// Operational routes (require authentication)
		if r.adminController != nil && r.authMiddleware != nil {
			admin := v1.Group("/admin")
			admin.Use(r.authMiddleware.Authenticate())
			{
				admin.POST("/reminders/trigger", r.adminController.TriggerReminders)
				admin.GET("/scheduler/status", r.adminController.SchedulerStatus)
			}
		}
	}
}
