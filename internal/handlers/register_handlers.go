package handlers

import (
	"github.com/contabix/contabix_backend/cmd/docs"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/middleware"
	"github.com/contabix/contabix_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	dbPool *pgxpool.Pool,
) {
	healthHandler := newHealthHandler(dbPool)
	r.GET("/health", healthHandler.health)

	// Setup API v1 routes with auth and tenant middleware
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// API key auth runs first so a valid key can pin the tenant; requests
	// without one fall through to bearer auth.
	v1 := r.Group("/api/v1", middleware.APIKeyAuth(services.APIKey), middleware.AuthMiddleware(cfg.JWTSecret))

	// Tenant administration is authenticated but not tenant-scoped: the
	// tenant being managed is named in the path, not the header.
	registerTenantRoutes(v1, services.Tenant, services.APIKey)

	// Everything below requires a resolved tenant.
	tenantScoped := v1.Group("", middleware.TenantMiddleware())
	registerAccountRoutes(tenantScoped, services.Account)
	registerFiscalPeriodRoutes(tenantScoped, services.FiscalPeriod)
	registerJournalRoutes(tenantScoped, services.Journal)
	registerReportingRoutes(tenantScoped, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
