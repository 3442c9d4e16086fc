package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/dto"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
)

// stationService manages the station directory.
type stationService struct {
	stationRepo portsrepo.StationRepository
}

// NewStationService creates a new StationSvcFacade.
func NewStationService(stationRepo portsrepo.StationRepository) portssvc.StationSvcFacade {
	return &stationService{stationRepo: stationRepo}
}

var _ portssvc.StationSvcFacade = (*stationService)(nil)

func (s *stationService) CreateStation(ctx context.Context, req dto.CreateStationRequest, creatorID string) (*domain.Station, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	station := domain.Station{
		StationID: uuid.NewString(),
		Name:      req.Name,
		Code:      req.Code,
		Region:    req.Region,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.stationRepo.SaveStation(ctx, station); err != nil {
		logger.Error("Failed to save station", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save station: %w", err)
	}
	return &station, nil
}

func (s *stationService) GetStationByID(ctx context.Context, stationID string) (*domain.Station, error) {
	return s.stationRepo.FindStationByID(ctx, stationID)
}

func (s *stationService) ListStations(ctx context.Context, limit, offset int) ([]domain.Station, error) {
	return s.stationRepo.ListStations(ctx, limit, offset)
}

func (s *stationService) DeactivateStation(ctx context.Context, stationID string, requestingID string) error {
	station, err := s.stationRepo.FindStationByID(ctx, stationID)
	if err != nil {
		return err
	}
	station.IsActive = false
	station.LastUpdatedAt = time.Now().UTC()
	station.LastUpdatedBy = requestingID
	if err := s.stationRepo.UpdateStation(ctx, *station); err != nil {
		return fmt.Errorf("failed to deactivate station %s: %w", stationID, err)
	}
	return nil
}
