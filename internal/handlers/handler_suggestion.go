package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
)

// suggestionHandler handles the price suggestion lifecycle: creation, review
// actions, and retrieval.
type suggestionHandler struct {
	suggestionService portssvc.SuggestionSvcFacade
	approvalService   portssvc.ApprovalSvcFacade
	permissionService portssvc.PermissionSvcFacade
}

func newSuggestionHandler(
	suggestionService portssvc.SuggestionSvcFacade,
	approvalService portssvc.ApprovalSvcFacade,
	permissionService portssvc.PermissionSvcFacade,
) *suggestionHandler {
	return &suggestionHandler{
		suggestionService: suggestionService,
		approvalService:   approvalService,
		permissionService: permissionService,
	}
}

// createSuggestion godoc
// @Summary Create a price suggestion
// @Description Creates a suggestion, resolving cost and fee inputs and deriving the margin
// @Tags suggestions
// @Accept json
// @Produce json
// @Param suggestion body dto.CreateSuggestionRequest true "Suggestion details"
// @Success 201 {object} dto.SuggestionResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Station or client not found"
// @Router /suggestions [post]
func (h *suggestionHandler) createSuggestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requesterID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestion, err := h.suggestionService.CreateSuggestion(c.Request.Context(), req, requesterID)
	if err != nil {
		h.respondError(c, logger, err, "Failed to create suggestion")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSuggestionResponse(suggestion))
}

// getSuggestion godoc
// @Summary Get a price suggestion
// @Description Retrieves a suggestion with its full approval history
// @Tags suggestions
// @Produce json
// @Param suggestionID path string true "Suggestion ID"
// @Success 200 {object} dto.SuggestionResponse
// @Failure 404 {object} map[string]string "Suggestion not found"
// @Router /suggestions/{suggestionID} [get]
func (h *suggestionHandler) getSuggestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	suggestionID := c.Param("suggestionID")

	suggestion, history, err := h.suggestionService.GetSuggestionByID(c.Request.Context(), suggestionID)
	if err != nil {
		h.respondError(c, logger, err, "Failed to retrieve suggestion")
		return
	}

	resp := dto.ToSuggestionResponse(suggestion)
	resp.History = dto.ToHistoryEntryResponses(history)
	c.JSON(http.StatusOK, resp)
}

// listSuggestions godoc
// @Summary List price suggestions
// @Description Lists suggestions filtered by status and station, token paginated
// @Tags suggestions
// @Produce json
// @Param status query string false "Status filter" Enums(DRAFT, PENDING, APPROVED, REJECTED)
// @Param stationID query string false "Station filter"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListSuggestionsResponse
// @Router /suggestions [get]
func (h *suggestionHandler) listSuggestions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSuggestionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.suggestionService.ListSuggestions(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, logger, err, "Failed to list suggestions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateSuggestion godoc
// @Summary Update a draft suggestion
// @Description Edits an unsubmitted draft; only the requester may edit
// @Tags suggestions
// @Accept json
// @Produce json
// @Param suggestionID path string true "Suggestion ID"
// @Param suggestion body dto.UpdateSuggestionRequest true "Fields to update"
// @Success 200 {object} dto.SuggestionResponse
// @Failure 403 {object} map[string]string "Not the requester"
// @Failure 409 {object} map[string]string "No longer a draft"
// @Router /suggestions/{suggestionID} [patch]
func (h *suggestionHandler) updateSuggestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	suggestionID := c.Param("suggestionID")

	var req dto.UpdateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requesterID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestion, err := h.suggestionService.UpdateSuggestion(c.Request.Context(), suggestionID, req, requesterID)
	if err != nil {
		h.respondError(c, logger, err, "Failed to update suggestion")
		return
	}

	c.JSON(http.StatusOK, dto.ToSuggestionResponse(suggestion))
}

// submitSuggestion godoc
// @Summary Submit a draft suggestion for review
// @Tags suggestions
// @Produce json
// @Param suggestionID path string true "Suggestion ID"
// @Success 200 {object} dto.SuggestionResponse
// @Failure 409 {object} map[string]string "Not a draft"
// @Router /suggestions/{suggestionID}/submit [post]
func (h *suggestionHandler) submitSuggestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	suggestionID := c.Param("suggestionID")

	requesterID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestion, err := h.approvalService.Submit(c.Request.Context(), suggestionID, requesterID)
	if err != nil {
		h.respondError(c, logger, err, "Failed to submit suggestion")
		return
	}

	c.JSON(http.StatusOK, dto.ToSuggestionResponse(suggestion))
}

// approveSuggestion godoc
// @Summary Approve a pending suggestion
// @Description Records an approval with a mandatory observation; a single approval finalizes the suggestion
// @Tags suggestions
// @Accept json
// @Produce json
// @Param suggestionID path string true "Suggestion ID"
// @Param review body dto.ReviewRequest true "Review observation"
// @Success 200 {object} dto.SuggestionResponse
// @Failure 403 {object} map[string]string "Margin exceeds the reviewer's ceiling"
// @Failure 409 {object} map[string]string "Suggestion changed or already finalized"
// @Router /suggestions/{suggestionID}/approve [post]
func (h *suggestionHandler) approveSuggestion(c *gin.Context) {
	h.review(c, h.approvalService.Approve)
}

// rejectSuggestion godoc
// @Summary Reject a pending suggestion
// @Description Records a rejection; the suggestion only becomes REJECTED once every configured approver has rejected
// @Tags suggestions
// @Accept json
// @Produce json
// @Param suggestionID path string true "Suggestion ID"
// @Param review body dto.ReviewRequest true "Review observation"
// @Success 200 {object} dto.SuggestionResponse
// @Failure 409 {object} map[string]string "Suggestion changed or already finalized"
// @Router /suggestions/{suggestionID}/reject [post]
func (h *suggestionHandler) rejectSuggestion(c *gin.Context) {
	h.review(c, h.approvalService.Reject)
}

func (h *suggestionHandler) review(c *gin.Context, act func(ctx context.Context, suggestionID, reviewerID, observation string) (*domain.PriceSuggestion, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	suggestionID := c.Param("suggestionID")

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An observation is required"})
		return
	}

	reviewerID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestion, err := act(c.Request.Context(), suggestionID, reviewerID, req.Observation)
	if err != nil {
		h.respondError(c, logger, err, "Failed to record review")
		return
	}

	c.JSON(http.StatusOK, dto.ToSuggestionResponse(suggestion))
}

// deleteSuggestion godoc
// @Summary Delete a suggestion
// @Description Deletes a suggestion and its history; terminal suggestions require an unrestricted reviewer
// @Tags suggestions
// @Produce json
// @Param suggestionID path string true "Suggestion ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Insufficient authority"
// @Failure 404 {object} map[string]string "Suggestion not found"
// @Router /suggestions/{suggestionID} [delete]
func (h *suggestionHandler) deleteSuggestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	suggestionID := c.Param("suggestionID")

	actorID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Deleting a finalized suggestion erases decision evidence; only an
	// unrestricted reviewer may do it.
	suggestion, _, err := h.suggestionService.GetSuggestionByID(c.Request.Context(), suggestionID)
	if err != nil {
		h.respondError(c, logger, err, "Failed to retrieve suggestion")
		return
	}
	if suggestion.Status.IsTerminal() {
		_, role, err := h.permissionService.GetApprovalAuthority(c.Request.Context(), actorID)
		if err != nil {
			h.respondError(c, logger, err, "Failed to check authority")
			return
		}
		if role != domain.RoleUnrestricted {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only unrestricted reviewers may delete finalized suggestions"})
			return
		}
	}

	if err := h.approvalService.Delete(c.Request.Context(), suggestionID, actorID); err != nil {
		h.respondError(c, logger, err, "Failed to delete suggestion")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *suggestionHandler) respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// registerSuggestionRoutes registers the suggestion lifecycle routes.
func registerSuggestionRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newSuggestionHandler(services.Suggestion, services.Approval, services.Permission)
	sg := group.Group("/suggestions")
	sg.POST("", h.createSuggestion)
	sg.GET("", h.listSuggestions)
	sg.GET("/:suggestionID", h.getSuggestion)
	sg.PATCH("/:suggestionID", h.updateSuggestion)
	sg.DELETE("/:suggestionID", h.deleteSuggestion)
	sg.POST("/:suggestionID/submit", h.submitSuggestion)
	sg.POST("/:suggestionID/approve", h.approveSuggestion)
	sg.POST("/:suggestionID/reject", h.rejectSuggestion)
}
