package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
)

type pgxQuotationRepository struct {
	BaseRepository
}

func newPgxQuotationRepository(pool *pgxpool.Pool) *pgxQuotationRepository {
	return &pgxQuotationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.QuotationRepositoryFacade = (*pgxQuotationRepository)(nil)

func (r *pgxQuotationRepository) SaveQuote(ctx context.Context, q domain.SupplyQuote) error {
	query := `
		INSERT INTO supply_quotes (
			quote_id, supply_base_id, supply_base_name, supply_base_code, supply_base_region,
			product, unit_price, discount, delivery_mode, quote_date,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.Pool.Exec(ctx, query,
		q.QuoteID, q.SupplyBaseID, q.SupplyBaseName, q.SupplyBaseCode, q.SupplyBaseRegion,
		q.Product, q.UnitPrice, q.Discount, q.DeliveryMode, q.QuoteDate,
		q.CreatedAt, q.CreatedBy, q.LastUpdatedAt, q.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save quote: %w", err)
	}
	return nil
}

// ListQuotesForDate compares on the calendar day, ordered by supply base ID
// so the resolver's tie-break is deterministic.
func (r *pgxQuotationRepository) ListQuotesForDate(ctx context.Context, product domain.ProductCode, date time.Time) ([]domain.SupplyQuote, error) {
	query := `
		SELECT quote_id, supply_base_id, supply_base_name, supply_base_code, supply_base_region,
		       product, unit_price, discount, delivery_mode, quote_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM supply_quotes
		WHERE product = $1 AND quote_date::date = $2::date
		ORDER BY supply_base_id ASC;`
	rows, err := r.Pool.Query(ctx, query, product, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	quotes := []domain.SupplyQuote{}
	for rows.Next() {
		var q domain.SupplyQuote
		err := rows.Scan(
			&q.QuoteID, &q.SupplyBaseID, &q.SupplyBaseName, &q.SupplyBaseCode, &q.SupplyBaseRegion,
			&q.Product, &q.UnitPrice, &q.Discount, &q.DeliveryMode, &q.QuoteDate,
			&q.CreatedAt, &q.CreatedBy, &q.LastUpdatedAt, &q.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote row: %w", err)
		}
		quotes = append(quotes, q)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating quote rows: %w", rows.Err())
	}
	return quotes, nil
}

func (r *pgxQuotationRepository) LatestQuoteDate(ctx context.Context, product domain.ProductCode, asOf time.Time) (time.Time, error) {
	query := `
		SELECT MAX(quote_date)
		FROM supply_quotes
		WHERE product = $1 AND quote_date::date <= $2::date;`
	var latest *time.Time
	if err := r.Pool.QueryRow(ctx, query, product, asOf).Scan(&latest); err != nil {
		return time.Time{}, fmt.Errorf("failed to find latest quote date: %w", err)
	}
	if latest == nil {
		return time.Time{}, fmt.Errorf("no quotes for product %s on or before %s: %w", product, asOf.Format("2006-01-02"), apperrors.ErrNotFound)
	}
	return *latest, nil
}

func (r *pgxQuotationRepository) SaveFreightRate(ctx context.Context, fr domain.FreightRate) error {
	query := `
		INSERT INTO freight_rates (
			freight_rate_id, station_id, supply_base_id, rate, active,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (station_id, supply_base_id) DO UPDATE SET
			rate = EXCLUDED.rate,
			active = EXCLUDED.active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;`
	_, err := r.Pool.Exec(ctx, query,
		fr.FreightRateID, fr.StationID, fr.SupplyBaseID, fr.Rate, fr.Active,
		fr.CreatedAt, fr.CreatedBy, fr.LastUpdatedAt, fr.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save freight rate: %w", err)
	}
	return nil
}

func (r *pgxQuotationRepository) ListFreightRates(ctx context.Context, stationID string) ([]domain.FreightRate, error) {
	query := `
		SELECT freight_rate_id, station_id, supply_base_id, rate, active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM freight_rates
		WHERE station_id = $1;`
	rows, err := r.Pool.Query(ctx, query, stationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query freight rates: %w", err)
	}
	defer rows.Close()

	rates := []domain.FreightRate{}
	for rows.Next() {
		var fr domain.FreightRate
		err := rows.Scan(
			&fr.FreightRateID, &fr.StationID, &fr.SupplyBaseID, &fr.Rate, &fr.Active,
			&fr.CreatedAt, &fr.CreatedBy, &fr.LastUpdatedAt, &fr.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan freight rate row: %w", err)
		}
		rates = append(rates, fr)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating freight rate rows: %w", rows.Err())
	}
	return rates, nil
}

func (r *pgxQuotationRepository) SaveManualReference(ctx context.Context, ref domain.ManualReferencePrice) error {
	query := `
		INSERT INTO manual_reference_prices (
			reference_id, station_id, product, price, reference_date,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.Pool.Exec(ctx, query,
		ref.ReferenceID, ref.StationID, ref.Product, ref.Price, ref.ReferenceDate,
		ref.CreatedAt, ref.CreatedBy, ref.LastUpdatedAt, ref.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save manual reference price: %w", err)
	}
	return nil
}

func (r *pgxQuotationRepository) LatestManualReference(ctx context.Context, stationID string, product domain.ProductCode) (*domain.ManualReferencePrice, error) {
	query := `
		SELECT reference_id, station_id, product, price, reference_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM manual_reference_prices
		WHERE station_id = $1 AND product = $2
		ORDER BY reference_date DESC, created_at DESC
		LIMIT 1;`
	var ref domain.ManualReferencePrice
	err := r.Pool.QueryRow(ctx, query, stationID, product).Scan(
		&ref.ReferenceID, &ref.StationID, &ref.Product, &ref.Price, &ref.ReferenceDate,
		&ref.CreatedAt, &ref.CreatedBy, &ref.LastUpdatedAt, &ref.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no manual reference for station %s product %s: %w", stationID, product, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find manual reference price: %w", err)
	}
	return &ref, nil
}
