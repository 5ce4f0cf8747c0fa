package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
)

type sponsorshipRepository struct {
	storage *Storage
}

type sponsorshipProcessRepository struct {
	storage *Storage
}

// --- SponsorshipRepository implementation ---

func (r *sponsorshipRepository) Create(ctx context.Context, s *model.Sponsorship) (*model.Sponsorship, error) {
	const query = `INSERT INTO sponsorships (sponsor_id, platform, description, price, active)
                   VALUES ($1, $2, $3, $4, TRUE)
                   RETURNING id, created_at`
	created := *s
	created.Active = true
	err := r.storage.pool.QueryRow(ctx, query, s.SponsorID, s.Platform, s.Description, s.Price).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *sponsorshipRepository) GetByID(ctx context.Context, id int64) (*model.Sponsorship, error) {
	const query = `SELECT id, sponsor_id, platform, description, price, active, created_at
                   FROM sponsorships WHERE id=$1`
	var s model.Sponsorship
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SponsorID, &s.Platform, &s.Description, &s.Price, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sponsorshipRepository) ListActive(ctx context.Context) ([]model.Sponsorship, error) {
	const query = `SELECT id, sponsor_id, platform, description, price, active, created_at
                   FROM sponsorships WHERE active ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Sponsorship
	for rows.Next() {
		var s model.Sponsorship
		if err := rows.Scan(
			&s.ID, &s.SponsorID, &s.Platform, &s.Description, &s.Price, &s.Active, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- SponsorshipProcessRepository implementation ---

func (r *sponsorshipProcessRepository) Create(ctx context.Context, sponsorshipID, buyerID int64) (*model.SponsorshipProcess, error) {
	const query = `INSERT INTO sponsorship_processes (sponsorship_id, buyer_id, status)
                   VALUES ($1, $2, $3)
                   RETURNING id, created_at, updated_at`
	process := model.SponsorshipProcess{
		SponsorshipID: sponsorshipID,
		BuyerID:       buyerID,
		Status:        model.SponsorshipStatusInitialized,
	}
	err := r.storage.pool.QueryRow(ctx, query, sponsorshipID, buyerID, process.Status).
		Scan(&process.ID, &process.CreatedAt, &process.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &process, nil
}

func (r *sponsorshipProcessRepository) GetByID(ctx context.Context, id int64) (*model.SponsorshipProcess, error) {
	const query = `SELECT id, sponsorship_id, buyer_id, status, verification_image, created_at, updated_at
                   FROM sponsorship_processes WHERE id=$1`
	var process model.SponsorshipProcess
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&process.ID, &process.SponsorshipID, &process.BuyerID, &process.Status,
		&process.VerificationImage, &process.CreatedAt, &process.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &process, nil
}

func (r *sponsorshipProcessRepository) UpdateStatus(ctx context.Context, id int64, status model.SponsorshipStatus) error {
	const query = `UPDATE sponsorship_processes SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *sponsorshipProcessRepository) SetVerificationImage(ctx context.Context, id int64, image string) error {
	const query = `UPDATE sponsorship_processes SET verification_image=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, image, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
