package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/sponsorship"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/infrastructure/persistence/models"
)

const sponsorshipColumns = `id, tenant_id, donor_id, child_id, project_id, monthly_amount, created_at, updated_at`

type SponsorshipRepository struct{}

func NewSponsorshipRepository() sponsorship.Repository {
	return &SponsorshipRepository{}
}

func (r *SponsorshipRepository) GetByDonorAndChild(ctx context.Context, donorID, childID uuid.UUID) (sponsorship.Sponsorship, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return sponsorship.Sponsorship{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+sponsorshipColumns+`
		FROM sponsorships
		WHERE tenant_id = $1 AND donor_id = $2 AND child_id = $3
	`, tenantID, donorID, childID)

	return scanSponsorship(row)
}

func (r *SponsorshipRepository) Create(ctx context.Context, s sponsorship.Sponsorship) (sponsorship.Sponsorship, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return sponsorship.Sponsorship{}, err
	}

	now := time.Now().UTC()
	row := tx.QueryRow(ctx, `
		INSERT INTO sponsorships (tenant_id, donor_id, child_id, project_id, monthly_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING `+sponsorshipColumns+`
	`, tenantID, s.DonorID(), s.ChildID(), s.ProjectID(), s.MonthlyAmount(), now)

	created, err := scanSponsorship(row)
	if err != nil {
		return sponsorship.Sponsorship{}, gerrors.Wrap(err, "create sponsorship")
	}
	return created, nil
}

func scanSponsorship(row pgx.Row) (sponsorship.Sponsorship, error) {
	var m models.Sponsorship
	if err := row.Scan(
		&m.ID, &m.TenantID, &m.DonorID, &m.ChildID, &m.ProjectID,
		&m.MonthlyAmount, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sponsorship.Sponsorship{}, sponsorship.ErrNotFound
		}
		return sponsorship.Sponsorship{}, err
	}
	return toDomainSponsorship(m), nil
}
