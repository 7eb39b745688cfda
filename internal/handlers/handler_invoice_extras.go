package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/hourstack/time_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceExtrasHandler handles HTTP requests for manual people lines, flat
// fees and fee attachments on an invoice.
type invoiceExtrasHandler struct {
	extrasService portssvc.InvoiceExtrasSvcFacade
}

// newInvoiceExtrasHandler creates a new invoiceExtrasHandler.
func newInvoiceExtrasHandler(es portssvc.InvoiceExtrasSvcFacade) *invoiceExtrasHandler {
	return &invoiceExtrasHandler{
		extrasService: es,
	}
}

// registerInvoiceExtrasRoutes registers the manual line, fee and attachment
// routes nested under a specific invoice.
func registerInvoiceExtrasRoutes(invoiceSpecific *gin.RouterGroup, extrasService portssvc.InvoiceExtrasSvcFacade) {
	h := newInvoiceExtrasHandler(extrasService)

	manualLines := invoiceSpecific.Group("/manual-lines")
	{
		manualLines.GET("", h.listManualLines)
		manualLines.POST("", h.addManualLine)
		manualLines.PUT("/:manualLineID", h.updateManualLine)
		manualLines.DELETE("/:manualLineID", h.deleteManualLine)
	}

	fees := invoiceSpecific.Group("/fees")
	{
		fees.GET("", h.listFees)
		fees.POST("", h.addFee)
		fees.PUT("/:feeID", h.updateFee)
		fees.DELETE("/:feeID", h.deleteFee)

		attachments := fees.Group("/:feeID/attachments")
		{
			attachments.GET("", h.listFeeAttachments)
			attachments.POST("", h.addFeeAttachment)
			attachments.DELETE("/:attachmentID", h.deleteFeeAttachment)
		}
	}
}

// listManualLines godoc
// @Summary List manual lines
// @Description Retrieves the manual people lines of an invoice.
// @Tags invoice-extras
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {array} dto.ManualLineResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to list manual lines"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/manual-lines [get]
func (h *invoiceExtrasHandler) listManualLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	lines, err := h.extrasService.ListManualLines(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list manual lines")
		return
	}

	c.JSON(http.StatusOK, dto.ToListManualLineResponse(lines))
}

// addManualLine godoc
// @Summary Add a manual line
// @Description Appends a manual people line to an editable invoice. The line total is derived from hours and rate.
// @Tags invoice-extras
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   line body dto.CreateManualLineRequest true "Manual line details"
// @Success 201 {object} dto.ManualLineResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to add manual line"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/manual-lines [post]
func (h *invoiceExtrasHandler) addManualLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.CreateManualLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddManualLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	line, err := h.extrasService.AddManualLine(c.Request.Context(), invoiceID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add manual line")
		return
	}

	c.JSON(http.StatusCreated, dto.ToManualLineResponse(line))
}

// updateManualLine godoc
// @Summary Update a manual line
// @Description Updates a manual line and re-derives its total.
// @Tags invoice-extras
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   manualLineID path string true "Manual line ID"
// @Param   line body dto.UpdateManualLineRequest true "Fields to update"
// @Success 200 {object} dto.ManualLineResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Manual line not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to update manual line"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/manual-lines/{manualLineID} [put]
func (h *invoiceExtrasHandler) updateManualLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	manualLineID := c.Param("manualLineID")

	var req dto.UpdateManualLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateManualLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	line, err := h.extrasService.UpdateManualLine(c.Request.Context(), invoiceID, manualLineID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update manual line")
		return
	}

	c.JSON(http.StatusOK, dto.ToManualLineResponse(line))
}

// deleteManualLine godoc
// @Summary Delete a manual line
// @Description Removes a manual line from an editable invoice.
// @Tags invoice-extras
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   manualLineID path string true "Manual line ID"
// @Success 204 "Manual line deleted"
// @Failure 404 {object} map[string]string "Manual line not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to delete manual line"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/manual-lines/{manualLineID} [delete]
func (h *invoiceExtrasHandler) deleteManualLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	manualLineID := c.Param("manualLineID")

	if err := h.extrasService.DeleteManualLine(c.Request.Context(), invoiceID, manualLineID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete manual line")
		return
	}

	c.Status(http.StatusNoContent)
}

// listFees godoc
// @Summary List fees
// @Description Retrieves the flat fees of an invoice.
// @Tags invoice-extras
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {array} dto.FeeResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to list fees"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/fees [get]
func (h *invoiceExtrasHandler) listFees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	fees, err := h.extrasService.ListFees(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list fees")
		return
	}

	c.JSON(http.StatusOK, dto.ToListFeeResponse(fees))
}

// addFee godoc
// @Summary Add a fee
// @Description Appends a flat fee to an editable invoice. The fee total is derived from quantity and unit price.
// @Tags invoice-extras
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   fee body dto.CreateFeeRequest true "Fee details"
// @Success 201 {object} dto.FeeResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to add fee"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/fees [post]
func (h *invoiceExtrasHandler) addFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fee, err := h.extrasService.AddFee(c.Request.Context(), invoiceID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add fee")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeeResponse(fee))
}

// updateFee godoc
// @Summary Update a fee
// @Description Updates a fee and re-derives its total.
// @Tags invoice-extras
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   feeID path string true "Fee ID"
// @Param   fee body dto.UpdateFeeRequest true "Fields to update"
// @Success 200 {object} dto.FeeResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Fee not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to update fee"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/fees/{feeID} [put]
func (h *invoiceExtrasHandler) updateFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	feeID := c.Param("feeID")

	var req dto.UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fee, err := h.extrasService.UpdateFee(c.Request.Context(), invoiceID, feeID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update fee")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeResponse(fee))
}

// deleteFee godoc
// @Summary Delete a fee
// @Description Removes a fee along with its attachment records.
// @Tags invoice-extras
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   feeID path string true "Fee ID"
// @Success 204 "Fee deleted"
// @Failure 404 {object} map[string]string "Fee not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to delete fee"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/fees/{feeID} [delete]
func (h *invoiceExtrasHandler) deleteFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	feeID := c.Param("feeID")

	if err := h.extrasService.DeleteFee(c.Request.Context(), invoiceID, feeID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete fee")
		return
	}

	c.Status(http.StatusNoContent)
}

// listFeeAttachments godoc
// @Summary List fee attachments
// @Description Retrieves the attachment records of a fee.
// @Tags invoice-extras
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   feeID path string true "Fee ID"
// @Success 200 {array} dto.FeeAttachmentResponse
// @Failure 404 {object} map[string]string "Fee not found"
// @Failure 500 {object} map[string]string "Failed to list attachments"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/fees/{feeID}/attachments [get]
func (h *invoiceExtrasHandler) listFeeAttachments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	feeID := c.Param("feeID")

	attachments, err := h.extrasService.ListFeeAttachments(c.Request.Context(), invoiceID, feeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list attachments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListFeeAttachmentResponse(attachments))
}

// addFeeAttachment godoc
// @Summary Record a fee attachment
// @Description Records attachment metadata on a fee. The file itself lives in external storage.
// @Tags invoice-extras
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   feeID path string true "Fee ID"
// @Param   attachment body dto.CreateFeeAttachmentRequest true "Attachment metadata"
// @Success 201 {object} dto.FeeAttachmentResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Fee not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to add attachment"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/fees/{feeID}/attachments [post]
func (h *invoiceExtrasHandler) addFeeAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	feeID := c.Param("feeID")

	var req dto.CreateFeeAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddFeeAttachment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	attachment, err := h.extrasService.AddFeeAttachment(c.Request.Context(), invoiceID, feeID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add attachment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeeAttachmentResponse(attachment))
}

// deleteFeeAttachment godoc
// @Summary Delete a fee attachment
// @Description Removes an attachment record from a fee.
// @Tags invoice-extras
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   feeID path string true "Fee ID"
// @Param   attachmentID path string true "Attachment ID"
// @Success 204 "Attachment deleted"
// @Failure 404 {object} map[string]string "Attachment not found"
// @Failure 409 {object} map[string]string "Invoice not editable"
// @Failure 500 {object} map[string]string "Failed to delete attachment"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/fees/{feeID}/attachments/{attachmentID} [delete]
func (h *invoiceExtrasHandler) deleteFeeAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	feeID := c.Param("feeID")
	attachmentID := c.Param("attachmentID")

	if err := h.extrasService.DeleteFeeAttachment(c.Request.Context(), invoiceID, feeID, attachmentID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete attachment")
		return
	}

	c.Status(http.StatusNoContent)
}
