package router

import (
	"smartPricer/internal/middleware"
	"smartPricer/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAll)
	products.GET("/:id", handler.GetByID)
	products.GET("/:id/prediction", handler.GetPrediction)

	products.POST("", handler.Create, authRequired, adminOnly)
	products.PUT("/:id", handler.Update, authRequired, adminOnly)
	products.DELETE("/:id", handler.Delete, authRequired, adminOnly)
	products.POST("/:id/reprice", handler.Reprice, authRequired, adminOnly)
}

func SetupPricingRoutes(api *echo.Group, handler *rest.PricingHandler) {
	pricing := api.Group("/pricing")

	pricing.POST("/predict", handler.Predict)
}

func SetupPricingAdminRoutes(api *echo.Group, handler *rest.PricingAdminHandler) {
	admin := api.Group("/admin/pricing", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpsertConfig)
	admin.GET("/decisions", handler.GetDecisions)
}

func SetupSimulationRoutes(api *echo.Group, handler *rest.SimulationHandler, authRequired echo.MiddlewareFunc) {
	simulations := api.Group("/simulations", authRequired)

	simulations.POST("/rollout", handler.Rollout)
}
