package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/hourstack/time_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices and their
// billed-time lines.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	recalcService  portssvc.RecalculationSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade, rs portssvc.RecalculationSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
		recalcService:  rs,
	}
}

// registerInvoiceRoutes registers invoice routes plus the manual line, fee
// and attachment resources nested under an invoice.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, extrasService portssvc.InvoiceExtrasSvcFacade, recalcService portssvc.RecalculationSvcFacade) {
	h := newInvoiceHandler(invoiceService, recalcService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/summary", h.getInvoiceSummary)
	}

	invoiceSpecific := rg.Group("/invoices/:invoiceID")
	{
		invoiceSpecific.GET("", h.getInvoice)
		invoiceSpecific.PUT("", h.updateInvoice)
		invoiceSpecific.DELETE("", h.deleteInvoice)
		invoiceSpecific.POST("/transition", h.transitionInvoice)
		invoiceSpecific.POST("/recalculate", h.recalculateInvoice)

		lines := invoiceSpecific.Group("/lines")
		{
			lines.PATCH("/:lineID", h.updateLineHours)
			lines.DELETE("/:lineID", h.deleteLine)
		}

		registerInvoiceExtrasRoutes(invoiceSpecific, extrasService)
	}
}

// createInvoice godoc
// @Summary Create a draft invoice
// @Description Aggregates the project's unbilled billable hours into a new draft invoice, snapshotting current rates and names. An empty backlog still yields an empty draft.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 409 {object} map[string]string "Time entries already billed"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves a paginated list of invoices, optionally filtered by project and status.
// @Tags invoices
// @Produce  json
// @Param   project_id query string false "Project filter"
// @Param   status query string false "Status filter" Enums(draft, sent, paid, cancelled, voided)
// @Param   limit query int false "Page size"
// @Param   next_token query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getInvoiceSummary godoc
// @Summary Invoice summary
// @Description Aggregates draft counts and unpaid/paid totals across all invoices.
// @Tags invoices
// @Produce  json
// @Success 200 {object} dto.InvoiceSummaryResponse
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /invoices/summary [get]
func (h *invoiceHandler) getInvoiceSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.invoiceService.GetInvoiceSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceSummaryResponse(summary))
}

// getInvoice godoc
// @Summary Get an invoice with its lines
// @Description Retrieves an invoice along with its billed-time lines, manual lines, fees and linked time entry ids.
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceDetailResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	detail, err := h.invoiceService.GetInvoiceDetail(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve invoice")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// updateInvoice godoc
// @Summary Update invoice metadata
// @Description Updates notes, invoice number, dates and discount while the invoice is editable. Totals are re-derived after a discount change.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to update invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// transitionInvoice godoc
// @Summary Transition invoice status
// @Description Moves the invoice through its lifecycle (draft, sent, paid, cancelled, voided). Illegal moves are rejected.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   transition body dto.TransitionInvoiceRequest true "Target status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invalid status transition"
// @Failure 500 {object} map[string]string "Failed to transition invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/transition [post]
func (h *invoiceHandler) transitionInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.TransitionInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.TransitionInvoice(c.Request.Context(), invoiceID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to transition invoice")
		return
	}

	logger.Info("Invoice transitioned",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(invoice.Status)),
	)
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// recalculateInvoice godoc
// @Summary Recalculate an invoice against current rates
// @Description Re-resolves each billed-time line against the current project rates, preserving hours. No-op when rates have not changed.
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to recalculate invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/recalculate [post]
func (h *invoiceHandler) recalculateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.recalcService.RecalculateInvoice(c.Request.Context(), invoiceID, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recalculate invoice")
		return
	}

	logger.Info("Invoice recalculated", slog.String("invoice_id", invoiceID))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete a draft invoice
// @Description Removes a draft invoice. Its time entries become billable again.
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "Invoice deleted"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Only drafts can be deleted"
// @Failure 500 {object} map[string]string "Failed to delete invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete invoice")
		return
	}

	c.Status(http.StatusNoContent)
}

// updateLineHours godoc
// @Summary Update hours on a billed-time line
// @Description Rewrites the hours on a line; the amount is re-derived from the stored rate snapshot.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   lineID path string true "Line ID"
// @Param   line body dto.UpdateLineHoursRequest true "New hours"
// @Success 204 "Line updated"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Invoice or line not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to update line"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/lines/{lineID} [patch]
func (h *invoiceHandler) updateLineHours(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineID := c.Param("lineID")

	var req dto.UpdateLineHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLineHours", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.UpdateLineHours(c.Request.Context(), invoiceID, lineID, req, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to update line")
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteLine godoc
// @Summary Delete a billed-time line
// @Description Removes a line from an editable invoice. The underlying time entries stay linked and are not re-billed.
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   lineID path string true "Line ID"
// @Success 204 "Line deleted"
// @Failure 404 {object} map[string]string "Invoice or line not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to delete line"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/lines/{lineID} [delete]
func (h *invoiceHandler) deleteLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineID := c.Param("lineID")

	if err := h.invoiceService.DeleteLine(c.Request.Context(), invoiceID, lineID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete line")
		return
	}

	c.Status(http.StatusNoContent)
}
