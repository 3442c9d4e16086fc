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

type pgxStationRepository struct {
	BaseRepository
}

func newPgxStationRepository(pool *pgxpool.Pool) *pgxStationRepository {
	return &pgxStationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StationRepository = (*pgxStationRepository)(nil)

func (r *pgxStationRepository) SaveStation(ctx context.Context, station domain.Station) error {
	query := `
		INSERT INTO stations (station_id, name, code, region, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.Pool.Exec(ctx, query,
		station.StationID, station.Name, station.Code, station.Region, station.IsActive,
		station.CreatedAt, station.CreatedBy, station.LastUpdatedAt, station.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save station: %w", err)
	}
	return nil
}

func (r *pgxStationRepository) FindStationByID(ctx context.Context, stationID string) (*domain.Station, error) {
	query := `
		SELECT station_id, name, code, region, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM stations
		WHERE station_id = $1;`
	var station domain.Station
	err := r.Pool.QueryRow(ctx, query, stationID).Scan(
		&station.StationID, &station.Name, &station.Code, &station.Region, &station.IsActive,
		&station.CreatedAt, &station.CreatedBy, &station.LastUpdatedAt, &station.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("station %s: %w", stationID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find station by ID: %w", err)
	}
	return &station, nil
}

func (r *pgxStationRepository) ListStations(ctx context.Context, limit int, offset int) ([]domain.Station, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT station_id, name, code, region, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM stations
		ORDER BY name ASC
		LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	stations := []domain.Station{}
	for rows.Next() {
		var station domain.Station
		err := rows.Scan(
			&station.StationID, &station.Name, &station.Code, &station.Region, &station.IsActive,
			&station.CreatedAt, &station.CreatedBy, &station.LastUpdatedAt, &station.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		stations = append(stations, station)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating station rows: %w", rows.Err())
	}
	return stations, nil
}

func (r *pgxStationRepository) UpdateStation(ctx context.Context, station domain.Station) error {
	query := `
		UPDATE stations
		SET name = $1, code = $2, region = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE station_id = $7;`
	cmdTag, err := r.Pool.Exec(ctx, query,
		station.Name, station.Code, station.Region, station.IsActive,
		station.LastUpdatedAt, station.LastUpdatedBy, station.StationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update station: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("station %s: %w", station.StationID, apperrors.ErrNotFound)
	}
	return nil
}
