package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
)

// directoryHandler handles the station, client, and payment method
// directories the suggestion flow validates against.
type directoryHandler struct {
	stationService       portssvc.StationSvcFacade
	clientService        portssvc.ClientSvcFacade
	paymentMethodService portssvc.PaymentMethodSvcFacade
}

func newDirectoryHandler(
	stationService portssvc.StationSvcFacade,
	clientService portssvc.ClientSvcFacade,
	paymentMethodService portssvc.PaymentMethodSvcFacade,
) *directoryHandler {
	return &directoryHandler{
		stationService:       stationService,
		clientService:        clientService,
		paymentMethodService: paymentMethodService,
	}
}

func listParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// createStation godoc
// @Summary Create a station
// @Tags directory
// @Accept json
// @Produce json
// @Param station body dto.CreateStationRequest true "Station details"
// @Success 201 {object} domain.Station
// @Router /stations [post]
func (h *directoryHandler) createStation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	creatorID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	station, err := h.stationService.CreateStation(c.Request.Context(), req, creatorID)
	if err != nil {
		logger.Error("Failed to create station", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create station"})
		return
	}
	c.JSON(http.StatusCreated, station)
}

// getStation godoc
// @Summary Get a station
// @Tags directory
// @Produce json
// @Param stationID path string true "Station ID"
// @Success 200 {object} domain.Station
// @Failure 404 {object} map[string]string "Station not found"
// @Router /stations/{stationID} [get]
func (h *directoryHandler) getStation(c *gin.Context) {
	station, err := h.stationService.GetStationByID(c.Request.Context(), c.Param("stationID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve station"})
		return
	}
	c.JSON(http.StatusOK, station)
}

// listStations godoc
// @Summary List stations
// @Tags directory
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.Station
// @Router /stations [get]
func (h *directoryHandler) listStations(c *gin.Context) {
	limit, offset := listParams(c)
	stations, err := h.stationService.ListStations(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stations"})
		return
	}
	c.JSON(http.StatusOK, stations)
}

// deactivateStation godoc
// @Summary Deactivate a station
// @Tags directory
// @Produce json
// @Param stationID path string true "Station ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Station not found"
// @Router /stations/{stationID} [delete]
func (h *directoryHandler) deactivateStation(c *gin.Context) {
	requestingID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.stationService.DeactivateStation(c.Request.Context(), c.Param("stationID"), requestingID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate station"})
		return
	}
	c.Status(http.StatusNoContent)
}

// createClient godoc
// @Summary Create a client
// @Tags directory
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} domain.Client
// @Router /clients [post]
func (h *directoryHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	creatorID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, creatorID)
	if err != nil {
		logger.Error("Failed to create client", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}
	c.JSON(http.StatusCreated, client)
}

// listClients godoc
// @Summary List clients
// @Tags directory
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.Client
// @Router /clients [get]
func (h *directoryHandler) listClients(c *gin.Context) {
	limit, offset := listParams(c)
	clients, err := h.clientService.ListClients(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

// createPaymentMethod godoc
// @Summary Create a payment method
// @Tags directory
// @Accept json
// @Produce json
// @Param method body dto.CreatePaymentMethodRequest true "Payment method details"
// @Success 201 {object} domain.PaymentMethod
// @Router /payment-methods [post]
func (h *directoryHandler) createPaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	creatorID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	method, err := h.paymentMethodService.CreatePaymentMethod(c.Request.Context(), req, creatorID)
	if err != nil {
		logger.Error("Failed to create payment method", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment method"})
		return
	}
	c.JSON(http.StatusCreated, method)
}

// listPaymentMethods godoc
// @Summary List payment methods
// @Tags directory
// @Produce json
// @Success 200 {array} domain.PaymentMethod
// @Router /payment-methods [get]
func (h *directoryHandler) listPaymentMethods(c *gin.Context) {
	methods, err := h.paymentMethodService.ListPaymentMethods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payment methods"})
		return
	}
	c.JSON(http.StatusOK, methods)
}

// setFeeRate godoc
// @Summary Configure a fee rate
// @Description Sets the fee percentage for a payment method, station-scoped when a station is named
// @Tags directory
// @Accept json
// @Produce json
// @Param rate body dto.SetFeeRateRequest true "Fee rate"
// @Success 201 {object} domain.FeeRate
// @Failure 400 {object} map[string]string "Negative fee"
// @Failure 404 {object} map[string]string "Payment method not found"
// @Router /payment-methods/fees [post]
func (h *directoryHandler) setFeeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetFeeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	creatorID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.paymentMethodService.SetFeeRate(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		default:
			logger.Error("Failed to set fee rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set fee rate"})
		}
		return
	}
	c.JSON(http.StatusCreated, rate)
}

// registerDirectoryRoutes registers station/client/payment-method routes.
func registerDirectoryRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newDirectoryHandler(services.Station, services.Client, services.PaymentMethod)

	stations := group.Group("/stations")
	stations.POST("", h.createStation)
	stations.GET("", h.listStations)
	stations.GET("/:stationID", h.getStation)
	stations.DELETE("/:stationID", h.deactivateStation)

	clients := group.Group("/clients")
	clients.POST("", h.createClient)
	clients.GET("", h.listClients)

	methods := group.Group("/payment-methods")
	methods.POST("", h.createPaymentMethod)
	methods.GET("", h.listPaymentMethods)
	methods.POST("/fees", h.setFeeRate)
}
