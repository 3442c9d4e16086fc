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

// reviewerHandler handles reviewer account administration.
type reviewerHandler struct {
	reviewerService portssvc.ReviewerSvcFacade
}

func newReviewerHandler(reviewerService portssvc.ReviewerSvcFacade) *reviewerHandler {
	return &reviewerHandler{reviewerService: reviewerService}
}

// getReviewer godoc
// @Summary Get a reviewer
// @Tags reviewers
// @Produce json
// @Param reviewerID path string true "Reviewer ID"
// @Success 200 {object} dto.ReviewerResponse
// @Failure 404 {object} map[string]string "Reviewer not found"
// @Router /reviewers/{reviewerID} [get]
func (h *reviewerHandler) getReviewer(c *gin.Context) {
	reviewer, err := h.reviewerService.GetReviewerByID(c.Request.Context(), c.Param("reviewerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reviewer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviewer"})
		return
	}
	c.JSON(http.StatusOK, dto.ToReviewerResponse(reviewer))
}

// listReviewers godoc
// @Summary List reviewers
// @Tags reviewers
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.ReviewerResponse
// @Router /reviewers [get]
func (h *reviewerHandler) listReviewers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reviewers, err := h.reviewerService.ListReviewers(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviewers"})
		return
	}

	responses := make([]dto.ReviewerResponse, len(reviewers))
	for i := range reviewers {
		responses[i] = dto.ToReviewerResponse(&reviewers[i])
	}
	c.JSON(http.StatusOK, responses)
}

// updateReviewer godoc
// @Summary Update a reviewer
// @Description Updates a reviewer's name, role, or approval ceiling
// @Tags reviewers
// @Accept json
// @Produce json
// @Param reviewerID path string true "Reviewer ID"
// @Param reviewer body dto.UpdateReviewerRequest true "Fields to update"
// @Success 200 {object} dto.ReviewerResponse
// @Failure 404 {object} map[string]string "Reviewer not found"
// @Router /reviewers/{reviewerID} [patch]
func (h *reviewerHandler) updateReviewer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	requestingID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewer, err := h.reviewerService.UpdateReviewer(c.Request.Context(), c.Param("reviewerID"), req, requestingID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reviewer not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update reviewer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reviewer"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToReviewerResponse(reviewer))
}

// deleteReviewer godoc
// @Summary Delete a reviewer
// @Tags reviewers
// @Produce json
// @Param reviewerID path string true "Reviewer ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Reviewer not found"
// @Router /reviewers/{reviewerID} [delete]
func (h *reviewerHandler) deleteReviewer(c *gin.Context) {
	requestingID, ok := middleware.GetReviewerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.reviewerService.DeleteReviewer(c.Request.Context(), c.Param("reviewerID"), requestingID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reviewer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reviewer"})
		return
	}
	c.Status(http.StatusNoContent)
}

// registerReviewerRoutes registers reviewer administration routes.
func registerReviewerRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReviewerHandler(services.Reviewer)
	rg := group.Group("/reviewers")
	rg.GET("", h.listReviewers)
	rg.GET("/:reviewerID", h.getReviewer)
	rg.PATCH("/:reviewerID", h.updateReviewer)
	rg.DELETE("/:reviewerID", h.deleteReviewer)
}
