// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pocketwatch/backend/internal/integration/entrypoint/controller"
	"github.com/pocketwatch/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	sessionController     *controller.SessionController
	transactionController *controller.TransactionController
	settingsController    *controller.SettingsController
	dashboardController   *controller.DashboardController
	signInRateLimiter     *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	sessionController *controller.SessionController,
	transactionController *controller.TransactionController,
	settingsController *controller.SettingsController,
	dashboardController *controller.DashboardController,
	signInRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		sessionController:     sessionController,
		transactionController: transactionController,
		settingsController:    settingsController,
		dashboardController:   dashboardController,
		signInRateLimiter:     signInRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

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
		session := v1.Group("/session")
		{
			session.GET("", r.sessionController.Get)
			if r.signInRateLimiter != nil {
				session.POST("", r.signInRateLimiter.Middleware(), r.sessionController.SignIn)
			} else {
				session.POST("", r.sessionController.SignIn)
			}
			session.DELETE("", r.sessionController.SignOut)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.PATCH("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", r.settingsController.Get)
			settings.PATCH("", r.settingsController.Update)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/summary", r.dashboardController.Summary)
			dashboard.GET("/breakdown", r.dashboardController.Breakdown)
			dashboard.GET("/budget", r.dashboardController.Budget)
		}
	}
}
