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

// clientService manages the client directory.
type clientService struct {
	clientRepo portsrepo.ClientRepository
}

// NewClientService creates a new ClientSvcFacade.
func NewClientService(clientRepo portsrepo.ClientRepository) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	client := domain.Client{
		ClientID: uuid.NewString(),
		Name:     req.Name,
		Code:     req.Code,
		Region:   req.Region,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	return s.clientRepo.ListClients(ctx, limit, offset)
}
