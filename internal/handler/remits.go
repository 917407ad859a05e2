package handler

import (
	"net/http"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/infra"
	"github.com/rafamossetto/distributor-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type RemitsHandler struct {
	svc            service.RemitService
	pdfStoragePath string
	log            zerolog.Logger
}

func NewRemitsHandler(svc service.RemitService, pdfStoragePath string, log zerolog.Logger) *RemitsHandler {
	return &RemitsHandler{
		svc:            svc,
		pdfStoragePath: pdfStoragePath,
		log:            log.With().Str("component", "remits_handler").Logger(),
	}
}

// Get returns the print-ready remit document as JSON.
func (h *RemitsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Build(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPDF renders the remit to PDF and streams the file.
func (h *RemitsHandler) GetPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	remit, err := h.svc.Build(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	path, err := infra.GenerateRemitPDF(remit, h.pdfStoragePath)
	if err != nil {
		h.log.Error().Err(err).Int64("remit", remit.RemitNumber).Msg("PDF generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "No se pudo generar el PDF"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="remito.pdf"`)
	c.File(path)
}

// Email enqueues background delivery of the remit PDF.
func (h *RemitsHandler) Email(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.EmailRemitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Email(c.Request.Context(), callerFrom(c), id, req.Email); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "Envio de remito encolado"})
}
