package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
	"github.com/petroprice/fuel_pricing_app/internal/utils/pricing"
)

// pricingHandler exposes the resolvers and the profitability calculator so
// the dashboard can preview numbers before persisting a suggestion.
type pricingHandler struct {
	feeService           portssvc.FeeSvcFacade
	costService          portssvc.CostQuoteSvcFacade
	profitabilityService portssvc.ProfitabilitySvcFacade
}

func newPricingHandler(
	feeService portssvc.FeeSvcFacade,
	costService portssvc.CostQuoteSvcFacade,
	profitabilityService portssvc.ProfitabilitySvcFacade,
) *pricingHandler {
	return &pricingHandler{
		feeService:           feeService,
		costService:          costService,
		profitabilityService: profitabilityService,
	}
}

// resolveCost godoc
// @Summary Resolve the cheapest supply cost
// @Description Resolves the cheapest eligible delivered cost for a station/product/date, degrading through quote tiers
// @Tags pricing
// @Produce json
// @Param stationID query string true "Station ID"
// @Param product query string true "Product code"
// @Param asOf query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.CostResolution
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /pricing/cost [get]
func (h *pricingHandler) resolveCost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ResolveCostParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	resolution, err := h.costService.ResolveCost(c.Request.Context(), params.StationID, domain.ProductCode(params.Product), asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to resolve cost", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve cost"})
		return
	}

	c.JSON(http.StatusOK, resolution)
}

// resolveFee godoc
// @Summary Resolve the payment fee percentage
// @Description Resolves the fee for a station/payment-method pair; unconfigured methods resolve to zero
// @Tags pricing
// @Produce json
// @Param stationID query string true "Station ID"
// @Param paymentMethodID query string true "Payment method ID"
// @Success 200 {object} map[string]interface{} "feePercent"
// @Router /pricing/fee [get]
func (h *pricingHandler) resolveFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ResolveFeeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	feePercent, err := h.feeService.ResolveFee(c.Request.Context(), params.StationID, params.PaymentMethodID)
	if err != nil {
		logger.Error("Failed to resolve fee", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve fee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feePercent": feePercent})
}

// computeProfitability godoc
// @Summary Compute a profitability breakdown
// @Description Computes revenue, cost, gross profit, additive compensation, and net result for calculator inputs
// @Tags pricing
// @Accept json
// @Produce json
// @Param inputs body dto.ProfitabilityRequest true "Calculator inputs"
// @Success 200 {object} pricing.ProfitabilityResult
// @Failure 400 {object} map[string]string "Invalid inputs"
// @Router /pricing/profitability [post]
func (h *pricingHandler) computeProfitability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProfitabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.profitabilityService.ComputeProfitability(c.Request.Context(), pricing.ProfitabilityInput{
		Product:           domain.ProductCode(req.Product),
		PurchaseCost:      req.PurchaseCost,
		FreightCost:       req.FreightCost,
		FeePercent:        req.FeePercent,
		SuggestedPrice:    req.SuggestedPrice,
		VolumeProjectedM3: req.VolumeProjectedM3,
		ArlaSalePrice:     req.ArlaSalePrice,
		ArlaCostPrice:     req.ArlaCostPrice,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute profitability", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute profitability"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// registerPricingRoutes registers the resolver and calculator routes.
func registerPricingRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPricingHandler(services.Fee, services.CostQuote, services.Profitability)
	pg := group.Group("/pricing")
	pg.GET("/cost", h.resolveCost)
	pg.GET("/fee", h.resolveFee)
	pg.POST("/profitability", h.computeProfitability)
}
