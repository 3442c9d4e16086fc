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

type pgxPaymentMethodRepository struct {
	BaseRepository
}

func newPgxPaymentMethodRepository(pool *pgxpool.Pool) *pgxPaymentMethodRepository {
	return &pgxPaymentMethodRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentMethodRepository = (*pgxPaymentMethodRepository)(nil)

func (r *pgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (payment_method_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.Pool.Exec(ctx, query,
		method.PaymentMethodID, method.Name, method.IsActive,
		method.CreatedAt, method.CreatedBy, method.LastUpdatedAt, method.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment method: %w", err)
	}
	return nil
}

func (r *pgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	query := `
		SELECT payment_method_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_methods
		WHERE payment_method_id = $1;`
	var method domain.PaymentMethod
	err := r.Pool.QueryRow(ctx, query, paymentMethodID).Scan(
		&method.PaymentMethodID, &method.Name, &method.IsActive,
		&method.CreatedAt, &method.CreatedBy, &method.LastUpdatedAt, &method.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment method %s: %w", paymentMethodID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find payment method by ID: %w", err)
	}
	return &method, nil
}

func (r *pgxPaymentMethodRepository) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	query := `
		SELECT payment_method_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_methods
		ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	methods := []domain.PaymentMethod{}
	for rows.Next() {
		var method domain.PaymentMethod
		err := rows.Scan(
			&method.PaymentMethodID, &method.Name, &method.IsActive,
			&method.CreatedAt, &method.CreatedBy, &method.LastUpdatedAt, &method.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method row: %w", err)
		}
		methods = append(methods, method)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment method rows: %w", rows.Err())
	}
	return methods, nil
}
