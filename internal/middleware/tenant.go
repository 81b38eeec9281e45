package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantHeader is the header every tenant-scoped request must carry.
const TenantHeader = "X-Tenant-ID"

// TenantMiddleware enforces the tenant boundary at the HTTP edge: every
// request under it must name exactly one tenant, and a request authenticated
// by a tenant-scoped API key may not name a different one.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		header := c.GetHeader(TenantHeader)

		// An API key already pinned the tenant; the header, if present,
		// must agree.
		if pinned, ok := GetTenantIDFromContext(c); ok {
			if header != "" && header != pinned {
				logger.Warn("Tenant header does not match API key tenant")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Tenant mismatch"})
				return
			}
			c.Next()
			return
		}

		if header == "" {
			logger.Warn("Tenant header missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": TenantHeader + " header required"})
			return
		}
		if _, err := uuid.Parse(header); err != nil {
			logger.Warn("Tenant header is not a valid UUID")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": TenantHeader + " must be a valid UUID"})
			return
		}

		c.Request = c.Request.WithContext(WithTenantID(c.Request.Context(), header))
		c.Next()
	}
}
