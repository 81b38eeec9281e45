package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contabix/contabix_backend/internal/apperrors"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/dto"
	"github.com/contabix/contabix_backend/internal/middleware"
)

// tenantHandler handles tenant administration requests. These routes sit
// outside the tenant-scoped group: provisioning a tenant cannot require the
// tenant header that provisioning creates.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
	apiKeyService portssvc.APIKeySvcFacade
}

func newTenantHandler(tenantService portssvc.TenantSvcFacade, apiKeyService portssvc.APIKeySvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: tenantService, apiKeyService: apiKeyService}
}

func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade, apiKeyService portssvc.APIKeySvcFacade) {
	h := newTenantHandler(tenantService, apiKeyService)
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.createTenant)
		tenants.GET("/:tenantID", h.getTenant)
		tenants.POST("/:tenantID/api-keys", h.issueAPIKey)
		tenants.GET("/:tenantID/api-keys", h.listAPIKeys)
		tenants.DELETE("/:tenantID/api-keys/:keyID", h.revokeAPIKey)
	}
}

// createTenant godoc
// @Summary Provision a tenant
// @Description Creates an isolated accounting environment with its entry number sequence at 1
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.CreateTenantRequest true "Tenant"
// @Success 201 {object} dto.TenantResponse
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, userID)
	if err != nil {
		logger.Error("Failed to create tenant", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToTenantResponse(*tenant))
}

// getTenant godoc
// @Summary Get a tenant
// @Tags tenants
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} map[string]string "Tenant not found"
// @Router /tenants/{tenantID} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		logger.Error("Failed to get tenant", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tenant"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(*tenant))
}

// issueAPIKey godoc
// @Summary Issue an API key for a tenant
// @Description Returns the plaintext key exactly once; only its hash is stored
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param key body dto.CreateAPIKeyRequest true "Key name"
// @Success 201 {object} dto.CreateAPIKeyResponse
// @Router /tenants/{tenantID}/api-keys [post]
func (h *tenantHandler) issueAPIKey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID := c.Param("tenantID")

	var req dto.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for issueAPIKey", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp, err := h.apiKeyService.IssueKey(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		logger.Error("Failed to issue api key", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue api key"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// listAPIKeys godoc
// @Summary List a tenant's API keys
// @Tags tenants
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {array} dto.APIKeyResponse
// @Router /tenants/{tenantID}/api-keys [get]
func (h *tenantHandler) listAPIKeys(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	keys, err := h.apiKeyService.ListKeys(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to list api keys", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list api keys"})
		return
	}

	resp := make([]dto.APIKeyResponse, len(keys))
	for i, k := range keys {
		resp[i] = dto.ToAPIKeyResponse(k)
	}
	c.JSON(http.StatusOK, resp)
}

// revokeAPIKey godoc
// @Summary Revoke an API key
// @Description Revocation is immediate and idempotent
// @Tags tenants
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param keyID path string true "Key ID"
// @Success 204 "Revoked"
// @Failure 404 {object} map[string]string "Key not found"
// @Router /tenants/{tenantID}/api-keys/{keyID} [delete]
func (h *tenantHandler) revokeAPIKey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	keyID := c.Param("keyID")

	if err := h.apiKeyService.RevokeKey(c.Request.Context(), tenantID, keyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
			return
		}
		logger.Error("Failed to revoke api key", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke api key"})
		return
	}

	c.Status(http.StatusNoContent)
}
