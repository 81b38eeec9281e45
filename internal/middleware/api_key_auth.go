package middleware

import (
	"context"
	"log/slog"

	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// APIKeyAuth is a middleware that authenticates requests presenting an
// x-api-key header. The key is scoped to one tenant; a valid key both
// authenticates the caller and pins the request's tenant, so a mismatching
// X-Tenant-ID header downstream is rejected by the tenant middleware.
func APIKeyAuth(keySvc portssvc.APIKeySvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader("x-api-key")
		if presented == "" {
			c.Next() // No api key provided, fall through to bearer auth
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())

		tenantID, err := keySvc.ValidateKey(c.Request.Context(), presented)
		if err != nil {
			logger.Warn("API key validation failed", slog.String("error", err.Error()))
			c.Next() // Invalid key, fall through to bearer auth
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, "api-key")
		ctx = WithTenantID(ctx, tenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("authMethod", "api_key")
		c.Next()
	}
}
