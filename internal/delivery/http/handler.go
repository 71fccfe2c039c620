package http

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scansafe/backend/internal/domain"
	"github.com/scansafe/backend/internal/usecase"
)

// maxImageSize caps uploaded label photos at 8 MiB
const maxImageSize = 8 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanService *usecase.ScanService
	ocrClient   domain.OCRClient
	llmClient   domain.LLMClient
}

// NewHandler creates a new HTTP handler
func NewHandler(scanService *usecase.ScanService, ocrClient domain.OCRClient, llmClient domain.LLMClient) *Handler {
	return &Handler{
		scanService: scanService,
		ocrClient:   ocrClient,
		llmClient:   llmClient,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scansafe-backend",
		"version": "1.0.0",
	})
}

// scanRequest is the body of POST /api/v1/scan
type scanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
	UserID  string `json:"user_id"`
}

// Scan handles barcode scan requests: product lookup plus allergen check
// against the user's stored profile.
func (h *Handler) Scan(c *gin.Context) {
	if h.scanService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Scan service not configured"})
		return
	}

	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}

	result, err := h.scanService.Scan(c.Request.Context(), req.Barcode, req.UserID)
	if err != nil {
		h.writeScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeLabel handles ingredient-label photo uploads: OCR the image, then
// run the same allergen check over the extracted text.
func (h *Handler) AnalyzeLabel(c *gin.Context) {
	if h.scanService == nil || h.ocrClient == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Label analysis not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read image"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil || len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read image"})
		return
	}

	text, err := h.ocrClient.ExtractText(c.Request.Context(), image, fileHeader.Filename)
	if err != nil {
		log.Printf("[HTTP] OCR failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "text extraction failed"})
		return
	}
	if text == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no text found in image"})
		return
	}

	result, err := h.scanService.CheckLabel(c.Request.Context(), text, c.PostForm("user_id"))
	if err != nil {
		h.writeScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// analysisRequest is the body of POST /api/v1/analysis
type analysisRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeIngredients asks the LLM for a narrative analysis of free-form
// ingredient text and flags the warning sentences.
func (h *Handler) AnalyzeIngredients(c *gin.Context) {
	if h.llmClient == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "LLM analysis not configured"})
		return
	}

	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	analysis, err := h.llmClient.AnalyzeIngredients(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("[HTTP] LLM analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":  analysis,
		"sentences": usecase.HighlightWarnings(analysis),
	})
}

// writeScanError maps domain errors to HTTP status codes
func (h *Handler) writeScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found in database"})
	default:
		log.Printf("[HTTP] Scan failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "product lookup failed"})
	}
}
