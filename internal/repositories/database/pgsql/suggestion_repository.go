package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petroprice/fuel_pricing_app/internal/apperrors"
	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	"github.com/petroprice/fuel_pricing_app/internal/utils/pagination"
)

type pgxSuggestionRepository struct {
	BaseRepository
}

func newPgxSuggestionRepository(pool *pgxpool.Pool) *pgxSuggestionRepository {
	return &pgxSuggestionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SuggestionRepositoryWithTx = (*pgxSuggestionRepository)(nil)

const suggestionColumns = `
	suggestion_id, station_id, client_id, product,
	current_price, suggested_price, final_price, cost_price,
	margin_cents, price_increase_cents,
	purchase_cost, freight_cost, fee_percent,
	arla_purchase_price, arla_cost_price,
	volume_made_m3, volume_projected_m3,
	status, approval_level, total_approvers, approvals_count, rejections_count,
	approved_at, approved_by,
	supply_base_name, supply_base_code, supply_base_region, delivery_mode, cost_tier,
	requested_by, observations, attachments,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSuggestion(row pgx.Row) (*domain.PriceSuggestion, error) {
	var s domain.PriceSuggestion
	err := row.Scan(
		&s.SuggestionID, &s.StationID, &s.ClientID, &s.Product,
		&s.CurrentPrice, &s.SuggestedPrice, &s.FinalPrice, &s.CostPrice,
		&s.MarginCents, &s.PriceIncreaseCents,
		&s.PurchaseCost, &s.FreightCost, &s.FeePercent,
		&s.ArlaPurchasePrice, &s.ArlaCostPrice,
		&s.VolumeMadeM3, &s.VolumeProjectedM3,
		&s.Status, &s.ApprovalLevel, &s.TotalApprovers, &s.ApprovalsCount, &s.RejectionsCount,
		&s.ApprovedAt, &s.ApprovedBy,
		&s.PriceOrigin.SupplyBaseName, &s.PriceOrigin.SupplyBaseCode, &s.PriceOrigin.SupplyBaseRegion,
		&s.PriceOrigin.DeliveryMode, &s.PriceOrigin.CostTier,
		&s.RequestedBy, &s.Observations, &s.Attachments,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgxSuggestionRepository) SaveSuggestion(ctx context.Context, s domain.PriceSuggestion) error {
	query := `
		INSERT INTO price_suggestions (` + suggestionColumns + `)
		VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10,
			$11, $12, $13,
			$14, $15,
			$16, $17,
			$18, $19, $20, $21, $22,
			$23, $24,
			$25, $26, $27, $28, $29,
			$30, $31, $32,
			$33, $34, $35, $36
		);`
	_, err := r.Pool.Exec(ctx, query,
		s.SuggestionID, s.StationID, s.ClientID, s.Product,
		s.CurrentPrice, s.SuggestedPrice, s.FinalPrice, s.CostPrice,
		s.MarginCents, s.PriceIncreaseCents,
		s.PurchaseCost, s.FreightCost, s.FeePercent,
		s.ArlaPurchasePrice, s.ArlaCostPrice,
		s.VolumeMadeM3, s.VolumeProjectedM3,
		s.Status, s.ApprovalLevel, s.TotalApprovers, s.ApprovalsCount, s.RejectionsCount,
		s.ApprovedAt, s.ApprovedBy,
		s.PriceOrigin.SupplyBaseName, s.PriceOrigin.SupplyBaseCode, s.PriceOrigin.SupplyBaseRegion,
		s.PriceOrigin.DeliveryMode, s.PriceOrigin.CostTier,
		s.RequestedBy, s.Observations, s.Attachments,
		s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save suggestion: %w", err)
	}
	return nil
}

func (r *pgxSuggestionRepository) FindSuggestionByID(ctx context.Context, suggestionID string) (*domain.PriceSuggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM price_suggestions WHERE suggestion_id = $1;`
	s, err := scanSuggestion(r.Pool.QueryRow(ctx, query, suggestionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("suggestion %s: %w", suggestionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find suggestion by ID: %w", err)
	}
	return s, nil
}

func (r *pgxSuggestionRepository) ListSuggestions(ctx context.Context, filter portsrepo.ListSuggestionsFilter) ([]domain.PriceSuggestion, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + suggestionColumns + ` FROM price_suggestions WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StationID != nil {
		query += fmt.Sprintf(" AND station_id = $%d", argIdx)
		args = append(args, *filter.StationID)
		argIdx++
	}
	if filter.NextToken != nil {
		createdBefore, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(" AND created_at < $%d", argIdx)
		args = append(args, createdBefore)
		argIdx++
	}

	// Fetch one extra row to know whether a next page exists.
	query += fmt.Sprintf(" ORDER BY created_at DESC, suggestion_id DESC LIMIT $%d;", argIdx)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := []domain.PriceSuggestion{}
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan suggestion row: %w", err)
		}
		suggestions = append(suggestions, *s)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating suggestion rows: %w", rows.Err())
	}

	var nextToken *string
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
		token := pagination.EncodeToken(suggestions[len(suggestions)-1].CreatedAt)
		nextToken = &token
	}
	return suggestions, nextToken, nil
}

func (r *pgxSuggestionRepository) UpdateSuggestion(ctx context.Context, s domain.PriceSuggestion) error {
	query := `
		UPDATE price_suggestions SET
			current_price = $1, suggested_price = $2, final_price = $3,
			margin_cents = $4, price_increase_cents = $5,
			arla_purchase_price = $6,
			volume_made_m3 = $7, volume_projected_m3 = $8,
			observations = $9, attachments = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE suggestion_id = $13 AND status = 'DRAFT';`
	cmdTag, err := r.Pool.Exec(ctx, query,
		s.CurrentPrice, s.SuggestedPrice, s.FinalPrice,
		s.MarginCents, s.PriceIncreaseCents,
		s.ArlaPurchasePrice,
		s.VolumeMadeM3, s.VolumeProjectedM3,
		s.Observations, s.Attachments,
		s.LastUpdatedAt, s.LastUpdatedBy,
		s.SuggestionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s is no longer editable: %w", s.SuggestionID, apperrors.ErrConflict)
	}
	return nil
}

func (r *pgxSuggestionRepository) MarkSubmitted(ctx context.Context, suggestionID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE price_suggestions
		SET status = 'PENDING', last_updated_at = $1, last_updated_by = $2
		WHERE suggestion_id = $3 AND status = 'DRAFT';`
	cmdTag, err := r.Pool.Exec(ctx, query, updatedAt, updatedBy, suggestionID)
	if err != nil {
		return fmt.Errorf("failed to submit suggestion: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s is not a draft: %w", suggestionID, apperrors.ErrConflict)
	}
	return nil
}

// ApplyReview applies a review decision guarded by the counters the caller
// read, and appends the history entry in the same transaction. A stale
// snapshot, or a duplicate same-level vote by the same reviewer, surfaces as
// ErrConflict so the caller can re-read and retry.
func (r *pgxSuggestionRepository) ApplyReview(ctx context.Context, upd portsrepo.ReviewUpdate, entry domain.ApprovalHistoryEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
		UPDATE price_suggestions SET
			status = $1, approval_level = $2,
			approvals_count = $3, rejections_count = $4,
			final_price = COALESCE($5, final_price),
			approved_at = $6, approved_by = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE suggestion_id = $10
		  AND status = 'PENDING'
		  AND approvals_count = $11
		  AND rejections_count = $12;`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		upd.NewStatus, upd.NewApprovalLevel,
		upd.NewApprovals, upd.NewRejections,
		upd.NewFinalPrice,
		upd.ApprovedAt, upd.ApprovedBy,
		upd.UpdatedAt, upd.UpdatedBy,
		upd.SuggestionID,
		upd.ExpectedApprovals,
		upd.ExpectedRejections,
	)
	if err != nil {
		return fmt.Errorf("failed to apply review update: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s changed since read: %w", upd.SuggestionID, apperrors.ErrConflict)
	}

	historyQuery := `
		INSERT INTO approval_history (entry_id, suggestion_id, approver_id, action, observation, approval_level, acted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err = tx.Exec(ctx, historyQuery,
		entry.EntryID, entry.SuggestionID, entry.ApproverID,
		entry.Action, entry.Observation, entry.ApprovalLevel, entry.ActedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("reviewer %s already acted at level %d: %w", entry.ApproverID, entry.ApprovalLevel, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to append approval history: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *pgxSuggestionRepository) DeleteSuggestion(ctx context.Context, suggestionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM approval_history WHERE suggestion_id = $1;`, suggestionID); err != nil {
		return fmt.Errorf("failed to delete approval history: %w", err)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM price_suggestions WHERE suggestion_id = $1;`, suggestionID)
	if err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s: %w", suggestionID, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func (r *pgxSuggestionRepository) FindHistoryBySuggestionID(ctx context.Context, suggestionID string) ([]domain.ApprovalHistoryEntry, error) {
	query := `
		SELECT entry_id, suggestion_id, approver_id, action, observation, approval_level, acted_at
		FROM approval_history
		WHERE suggestion_id = $1
		ORDER BY acted_at ASC, entry_id ASC;`
	rows, err := r.Pool.Query(ctx, query, suggestionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approval history: %w", err)
	}
	defer rows.Close()

	entries := []domain.ApprovalHistoryEntry{}
	for rows.Next() {
		var e domain.ApprovalHistoryEntry
		if err := rows.Scan(&e.EntryID, &e.SuggestionID, &e.ApproverID, &e.Action, &e.Observation, &e.ApprovalLevel, &e.ActedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", rows.Err())
	}
	return entries, nil
}
