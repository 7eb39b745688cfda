package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/hourstack/time_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// timeEntryHandler handles HTTP requests related to logged hours.
type timeEntryHandler struct {
	timeEntryService portssvc.TimeEntrySvcFacade
}

// newTimeEntryHandler creates a new timeEntryHandler.
func newTimeEntryHandler(ts portssvc.TimeEntrySvcFacade) *timeEntryHandler {
	return &timeEntryHandler{
		timeEntryService: ts,
	}
}

// registerTimeEntryRoutes registers time entry specific routes
func registerTimeEntryRoutes(rg *gin.RouterGroup, timeEntryService portssvc.TimeEntrySvcFacade) {
	h := newTimeEntryHandler(timeEntryService)

	entries := rg.Group("/time-entries")
	{
		entries.POST("", h.createTimeEntry)
		entries.GET("", h.listTimeEntries)
		entries.GET("/:entryID", h.getTimeEntry)
		entries.PUT("/:entryID", h.updateTimeEntry)
		entries.DELETE("/:entryID", h.deleteTimeEntry)
	}
}

// createTimeEntry godoc
// @Summary Log hours
// @Description Logs hours for an employee on a project. Hours on internal projects are always stored non-billable.
// @Tags time-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateTimeEntryRequest true "Time entry details"
// @Success 201 {object} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Project or employee not found"
// @Failure 409 {object} map[string]string "Entry already exists for that day"
// @Failure 500 {object} map[string]string "Failed to save time entry"
// @Security BearerAuth
// @Router /time-entries [post]
func (h *timeEntryHandler) createTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.timeEntryService.CreateTimeEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save time entry")
		return
	}

	logger.Info("Time entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

// listTimeEntries godoc
// @Summary List time entries
// @Description Retrieves entries within a date range, optionally filtered by employee.
// @Tags time-entries
// @Produce  json
// @Param   from query string true "Range start (YYYY-MM-DD)"
// @Param   to query string true "Range end (YYYY-MM-DD)"
// @Param   employee_id query string false "Employee filter"
// @Success 200 {array} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 500 {object} map[string]string "Failed to list time entries"
// @Security BearerAuth
// @Router /time-entries [get]
func (h *timeEntryHandler) listTimeEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTimeEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTimeEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.timeEntryService.ListTimeEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list time entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTimeEntryResponse(entries))
}

// getTimeEntry godoc
// @Summary Get a time entry
// @Description Retrieves a single time entry by ID.
// @Tags time-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 404 {object} map[string]string "Time entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve time entry"
// @Security BearerAuth
// @Router /time-entries/{entryID} [get]
func (h *timeEntryHandler) getTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.timeEntryService.GetTimeEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve time entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// updateTimeEntry godoc
// @Summary Update a time entry
// @Description Updates an entry's date, hours, billable flag, status or notes.
// @Tags time-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateTimeEntryRequest true "Fields to update"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Time entry not found"
// @Failure 500 {object} map[string]string "Failed to update time entry"
// @Security BearerAuth
// @Router /time-entries/{entryID} [put]
func (h *timeEntryHandler) updateTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.timeEntryService.UpdateTimeEntry(c.Request.Context(), entryID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update time entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// deleteTimeEntry godoc
// @Summary Delete a time entry
// @Description Removes a time entry.
// @Tags time-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Time entry not found"
// @Failure 500 {object} map[string]string "Failed to delete time entry"
// @Security BearerAuth
// @Router /time-entries/{entryID} [delete]
func (h *timeEntryHandler) deleteTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	if err := h.timeEntryService.DeleteTimeEntry(c.Request.Context(), entryID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete time entry")
		return
	}

	c.Status(http.StatusNoContent)
}
