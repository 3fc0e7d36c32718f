package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bankops-oss/maker_checker_app/cmd/docs"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
	"github.com/bankops-oss/maker_checker_app/internal/middleware"
	"github.com/bankops-oss/maker_checker_app/pkg/config"
)

// RegisterRoutes wires every handler onto the engine. Auth routes stay
// outside the JWT-protected group; everything under /api/v1 requires a
// bearer token.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, services)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	registerTransactionRoutes(v1, services.Workflow, services.Identity)
	registerMeRoutes(v1, services.Permission, services.Identity)

	registerSwaggerRoutes(r, cfg)
}

func registerSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
