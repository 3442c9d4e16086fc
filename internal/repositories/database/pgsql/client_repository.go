package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
)

type pgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) *pgxClientRepository {
	return &pgxClientRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepository = (*pgxClientRepository)(nil)

func (r *pgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (client_id, name, code, region, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID, client.Name, client.Code, client.Region, client.IsActive,
		client.CreatedAt, client.CreatedBy, client.LastUpdatedAt, client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *pgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT client_id, name, code, region, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE client_id = $1;`
	var client domain.Client
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(
		&client.ClientID, &client.Name, &client.Code, &client.Region, &client.IsActive,
		&client.CreatedAt, &client.CreatedBy, &client.LastUpdatedAt, &client.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find client by ID: %w", err)
	}
	return &client, nil
}

func (r *pgxClientRepository) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT client_id, name, code, region, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		ORDER BY name ASC
		LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		var client domain.Client
		err := rows.Scan(
			&client.ClientID, &client.Name, &client.Code, &client.Region, &client.IsActive,
			&client.CreatedAt, &client.CreatedBy, &client.LastUpdatedAt, &client.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, client)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}
	return clients, nil
}

func (r *pgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
		UPDATE clients
		SET name = $1, code = $2, region = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE client_id = $7;`
	cmdTag, err := r.Pool.Exec(ctx, query,
		client.Name, client.Code, client.Region, client.IsActive,
		client.LastUpdatedAt, client.LastUpdatedBy, client.ClientID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", client.ClientID, apperrors.ErrNotFound)
	}
	return nil
}
