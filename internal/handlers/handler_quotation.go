package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
)

// quotationHandler handles intake of supply quotes, freight rates, and manual
// reference prices.
type quotationHandler struct {
	quotationService portssvc.QuotationSvcFacade
}

func newQuotationHandler(quotationService portssvc.QuotationSvcFacade) *quotationHandler {
	return &quotationHandler{quotationService: quotationService}
}

// createQuote godoc
// @Summary Record a supply quotation
// @Tags quotations
// @Accept json
// @Produce json
// @Param quote body dto.CreateQuoteRequest true "Quotation details"
// @Success 201 {object} domain.SupplyQuote
// @Failure 400 {object} map[string]string "Invalid quotation"
// @Router /quotations [post]
func (h *quotationHandler) createQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	creatorID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	quote, err := h.quotationService.CreateQuote(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create quote", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quote"})
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// createFreightRate godoc
// @Summary Record a freight rate
// @Tags quotations
// @Accept json
// @Produce json
// @Param rate body dto.CreateFreightRateRequest true "Freight rate details"
// @Success 201 {object} domain.FreightRate
// @Failure 400 {object} map[string]string "Invalid freight rate"
// @Router /quotations/freight-rates [post]
func (h *quotationHandler) createFreightRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFreightRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	creatorID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.quotationService.CreateFreightRate(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create freight rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create freight rate"})
		return
	}
	c.JSON(http.StatusCreated, rate)
}

// createManualReference godoc
// @Summary Record a manual reference price
// @Description Hand-entered cost used when no structured quotation exists for a station/product
// @Tags quotations
// @Accept json
// @Produce json
// @Param reference body dto.CreateManualReferenceRequest true "Reference price details"
// @Success 201 {object} domain.ManualReferencePrice
// @Failure 400 {object} map[string]string "Invalid reference price"
// @Router /quotations/manual-references [post]
func (h *quotationHandler) createManualReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateManualReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	creatorID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ref, err := h.quotationService.CreateManualReference(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create manual reference", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create manual reference"})
		return
	}
	c.JSON(http.StatusCreated, ref)
}

// registerQuotationRoutes registers quotation intake routes.
func registerQuotationRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newQuotationHandler(services.Quotation)
	qg := group.Group("/quotations")
	qg.POST("", h.createQuote)
	qg.POST("/freight-rates", h.createFreightRate)
	qg.POST("/manual-references", h.createManualReference)
}
