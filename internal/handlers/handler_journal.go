package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/core/services"
	"github.com/contabix/contabix_backend/internal/dto"
	"github.com/contabix/contabix_backend/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)
	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PATCH("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.PATCH("/:entryID/post", h.postEntry)
		entries.PATCH("/:entryID/void", h.voidEntry)
	}
}

// respondJournalError translates service errors into HTTP responses shared
// by the lifecycle endpoints.
func respondJournalError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrUnknownAccount),
		errors.Is(err, services.ErrInactiveAccount),
		errors.Is(err, services.ErrNoPeriodForDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnbalanced):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPeriodClosed),
		errors.Is(err, domain.ErrEntryNotDraft),
		errors.Is(err, domain.ErrAlreadyPosted),
		errors.Is(err, domain.ErrAlreadyVoided),
		errors.Is(err, domain.ErrNotPosted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" journal entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " journal entry"})
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a DRAFT entry with the tenant's next sequential number; balance is not required until posting
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid lines, account or date"
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondJournalError(c, logger, err, "create")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(*entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines, whatever its status
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), tenantID, entryID)
	if err != nil {
		respondJournalError(c, logger, err, "retrieve")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(*entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Token-paginated listing, newest first, optionally filtered by status
// @Tags journal-entries
// @Produce json
// @Param status query string false "DRAFT, POSTED or VOIDED"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	params := dto.ListEntriesParams{}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.EntryStatus(statusStr)
		switch status {
		case domain.EntryDraft, domain.EntryPosted, domain.EntryVoided:
			params.Status = &status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be DRAFT, POSTED or VOIDED"})
			return
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
			return
		}
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Mutates a DRAFT entry; providing lines replaces them wholesale
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Router /journal-entries/{entryID} [patch]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	entryID := c.Param("entryID")

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), tenantID, entryID, req, userID)
	if err != nil {
		respondJournalError(c, logger, err, "update")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(*entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Deletes a DRAFT entry; POSTED and VOIDED entries are permanent
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Router /journal-entries/{entryID} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	entryID := c.Param("entryID")

	if err := h.journalService.DeleteEntry(c.Request.Context(), tenantID, entryID, userID); err != nil {
		respondJournalError(c, logger, err, "delete")
		return
	}

	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Transitions DRAFT to POSTED after validating balance and period state; exactly one of two concurrent posts succeeds
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Already posted, voided, or period closed"
// @Failure 422 {object} map[string]string "Entry does not balance"
// @Router /journal-entries/{entryID}/post [patch]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	entryID := c.Param("entryID")

	entry, err := h.journalService.PostEntry(c.Request.Context(), tenantID, entryID, userID)
	if err != nil {
		respondJournalError(c, logger, err, "post")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(*entry))
}

// voidEntry godoc
// @Summary Void a posted journal entry
// @Description Transitions POSTED to VOIDED; the entry stays stored for audit but stops contributing to balances
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Not posted or already voided"
// @Router /journal-entries/{entryID}/void [patch]
func (h *journalHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	entryID := c.Param("entryID")

	entry, err := h.journalService.VoidEntry(c.Request.Context(), tenantID, entryID, userID)
	if err != nil {
		respondJournalError(c, logger, err, "void")
		return
	}

	logger.Info("Journal entry voided", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(*entry))
}
