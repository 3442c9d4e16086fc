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

type pgxFeeRateRepository struct {
	BaseRepository
}

func newPgxFeeRateRepository(pool *pgxpool.Pool) *pgxFeeRateRepository {
	return &pgxFeeRateRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.FeeRateRepositoryFacade = (*pgxFeeRateRepository)(nil)

// SaveFeeRate upserts on the (payment method, station) scope so re-configuring
// a fee replaces the previous rate rather than stacking rows.
func (r *pgxFeeRateRepository) SaveFeeRate(ctx context.Context, rate domain.FeeRate) error {
	query := `
		INSERT INTO fee_rates (
			fee_rate_id, payment_method_id, station_id, fee_percent,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (payment_method_id, COALESCE(station_id, '')) DO UPDATE SET
			fee_percent = EXCLUDED.fee_percent,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;`
	_, err := r.Pool.Exec(ctx, query,
		rate.FeeRateID, rate.PaymentMethodID, rate.StationID, rate.FeePercent,
		rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fee rate: %w", err)
	}
	return nil
}

func (r *pgxFeeRateRepository) FindStationFee(ctx context.Context, stationID string, paymentMethodID string) (*domain.FeeRate, error) {
	query := `
		SELECT fee_rate_id, payment_method_id, station_id, fee_percent,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM fee_rates
		WHERE payment_method_id = $1 AND station_id = $2;`
	return r.scanFeeRate(r.Pool.QueryRow(ctx, query, paymentMethodID, stationID))
}

func (r *pgxFeeRateRepository) FindGlobalFee(ctx context.Context, paymentMethodID string) (*domain.FeeRate, error) {
	query := `
		SELECT fee_rate_id, payment_method_id, station_id, fee_percent,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM fee_rates
		WHERE payment_method_id = $1 AND station_id IS NULL;`
	return r.scanFeeRate(r.Pool.QueryRow(ctx, query, paymentMethodID))
}

func (r *pgxFeeRateRepository) scanFeeRate(row pgx.Row) (*domain.FeeRate, error) {
	var rate domain.FeeRate
	err := row.Scan(
		&rate.FeeRateID, &rate.PaymentMethodID, &rate.StationID, &rate.FeePercent,
		&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("fee rate: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find fee rate: %w", err)
	}
	return &rate, nil
}
