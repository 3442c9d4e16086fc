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
)

type pgxReviewerRepository struct {
	BaseRepository
}

func newPgxReviewerRepository(pool *pgxpool.Pool) *pgxReviewerRepository {
	return &pgxReviewerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReviewerRepositoryFacade = (*pgxReviewerRepository)(nil)

const reviewerColumns = `
	reviewer_id, name, email, role, approval_ceiling_cents, password_hash,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanReviewer(row pgx.Row) (*domain.Reviewer, error) {
	var rev domain.Reviewer
	err := row.Scan(
		&rev.ReviewerID, &rev.Name, &rev.Email, &rev.Role, &rev.ApprovalCeilingCents, &rev.PasswordHash,
		&rev.CreatedAt, &rev.CreatedBy, &rev.LastUpdatedAt, &rev.LastUpdatedBy, &rev.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *pgxReviewerRepository) SaveReviewer(ctx context.Context, reviewer domain.Reviewer) error {
	query := `
		INSERT INTO reviewers (reviewer_id, name, email, role, approval_ceiling_cents, password_hash,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.Pool.Exec(ctx, query,
		reviewer.ReviewerID, reviewer.Name, reviewer.Email, reviewer.Role,
		reviewer.ApprovalCeilingCents, reviewer.PasswordHash,
		reviewer.CreatedAt, reviewer.CreatedBy, reviewer.LastUpdatedAt, reviewer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("email %s: %w", reviewer.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save reviewer: %w", err)
	}
	return nil
}

func (r *pgxReviewerRepository) FindReviewerByID(ctx context.Context, reviewerID string) (*domain.Reviewer, error) {
	query := `SELECT ` + reviewerColumns + ` FROM reviewers WHERE reviewer_id = $1 AND deleted_at IS NULL;`
	rev, err := scanReviewer(r.Pool.QueryRow(ctx, query, reviewerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reviewer %s: %w", reviewerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find reviewer by ID: %w", err)
	}
	return rev, nil
}

func (r *pgxReviewerRepository) FindReviewerByEmail(ctx context.Context, email string) (*domain.Reviewer, error) {
	query := `SELECT ` + reviewerColumns + ` FROM reviewers WHERE email = $1 AND deleted_at IS NULL;`
	rev, err := scanReviewer(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reviewer: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find reviewer by email: %w", err)
	}
	return rev, nil
}

func (r *pgxReviewerRepository) ListReviewers(ctx context.Context, limit int, offset int) ([]domain.Reviewer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + reviewerColumns + `
		FROM reviewers
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviewers: %w", err)
	}
	defer rows.Close()

	reviewers := []domain.Reviewer{}
	for rows.Next() {
		rev, err := scanReviewer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reviewer row: %w", err)
		}
		reviewers = append(reviewers, *rev)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reviewer rows: %w", rows.Err())
	}
	return reviewers, nil
}

func (r *pgxReviewerRepository) UpdateReviewer(ctx context.Context, reviewer domain.Reviewer) error {
	query := `
		UPDATE reviewers
		SET name = $1, role = $2, approval_ceiling_cents = $3, last_updated_at = $4, last_updated_by = $5
		WHERE reviewer_id = $6 AND deleted_at IS NULL;`
	cmdTag, err := r.Pool.Exec(ctx, query,
		reviewer.Name, reviewer.Role, reviewer.ApprovalCeilingCents,
		reviewer.LastUpdatedAt, reviewer.LastUpdatedBy, reviewer.ReviewerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reviewer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("reviewer %s: %w", reviewer.ReviewerID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *pgxReviewerRepository) MarkReviewerDeleted(ctx context.Context, reviewerID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE reviewers
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE reviewer_id = $3 AND deleted_at IS NULL;`
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, deletedBy, reviewerID)
	if err != nil {
		return fmt.Errorf("failed to mark reviewer as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("reviewer %s: %w", reviewerID, apperrors.ErrNotFound)
	}
	return nil
}
