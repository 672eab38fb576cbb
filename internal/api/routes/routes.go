// Package routes defines the HTTP routes for the user service.
package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/unifiedui/user-service/internal/api/handlers"
	"github.com/unifiedui/user-service/internal/api/middleware"
)

// BasePath is the prefix of every API route.
const BasePath = "/api/v1/user-service"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler *handlers.HealthHandler
	UsersHandler  *handlers.UsersHandler
	// EnableDocs mounts the swagger UI under /docs.
	EnableDocs bool
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group(BasePath)
	{
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		usersGroup := v1.Group("/users")
		{
			usersGroup.POST("", cfg.UsersHandler.CreateUser)
			usersGroup.GET("", cfg.UsersHandler.ListUsers)
			usersGroup.DELETE("", cfg.UsersHandler.DeleteAllUsers)

			usersGroup.POST("/indexes", cfg.UsersHandler.CreateIndex)

			usersGroup.GET("/by-name/:name", cfg.UsersHandler.GetUserByName)
			usersGroup.PATCH("/by-name/:name", cfg.UsersHandler.UpdateUserByName)

			usersGroup.GET("/:userId", cfg.UsersHandler.GetUser)
			usersGroup.PATCH("/:userId", cfg.UsersHandler.UpdateUser)
			usersGroup.DELETE("/:userId", cfg.UsersHandler.DeleteUser)
		}
	}

	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, corsCfg middleware.CORSConfig, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	r.HandleMethodNotAllowed = true

	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(middleware.NewCORSMiddleware(corsCfg))

	Setup(r, cfg)
}
