package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donor"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/infrastructure/persistence/models"
	"github.com/mlongerich/DonationTracker-sub002/pkg/repo"
)

const donorColumns = `id, tenant_id, name, email, last_updated_at, created_at, updated_at`

type DonorRepository struct{}

func NewDonorRepository() donor.Repository {
	return &DonorRepository{}
}

func (r *DonorRepository) GetByID(ctx context.Context, id uuid.UUID) (donor.Donor, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return donor.Donor{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+donorColumns+`
		FROM donors
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)

	return scanDonor(row)
}

func (r *DonorRepository) GetByEmail(ctx context.Context, email string) (donor.Donor, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return donor.Donor{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+donorColumns+`
		FROM donors
		WHERE tenant_id = $1 AND lower(email) = lower($2)
	`, tenantID, strings.TrimSpace(email))

	return scanDonor(row)
}

func (r *DonorRepository) GetPaginated(ctx context.Context, params *donor.FindParams) ([]donor.Donor, int64, error) {
	if params == nil {
		params = &donor.FindParams{}
	}

	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if q := strings.TrimSpace(params.Q); q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, "(name ILIKE $2 OR email ILIKE $2)")
	}

	query := `
		SELECT ` + donorColumns + `
		FROM donors
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC
	` + repo.FormatLimitOffset(limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []donor.Donor
	for rows.Next() {
		var row models.Donor
		if err := rows.Scan(
			&row.ID, &row.TenantID, &row.Name, &row.Email,
			&row.LastUpdatedAt, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, toDomainDonor(row))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM donors WHERE `+strings.Join(where, " AND "),
		args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *DonorRepository) Create(ctx context.Context, d donor.Donor) (donor.Donor, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return donor.Donor{}, err
	}

	now := time.Now().UTC()
	row := tx.QueryRow(ctx, `
		INSERT INTO donors (tenant_id, name, email, last_updated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+donorColumns+`
	`, tenantID, d.Name(), d.Email(), d.LastUpdatedAt(), now)

	created, err := scanDonor(row)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return donor.Donor{}, donor.ErrEmailTaken
		}
		return donor.Donor{}, gerrors.Wrap(err, "create donor")
	}
	return created, nil
}

func (r *DonorRepository) Update(ctx context.Context, d donor.Donor) error {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE donors
		SET name = $3, last_updated_at = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, d.ID(), d.Name(), d.LastUpdatedAt(), time.Now().UTC())
	if err != nil {
		return gerrors.Wrap(err, "update donor")
	}
	if tag.RowsAffected() == 0 {
		return donor.ErrNotFound
	}
	return nil
}

func scanDonor(row pgx.Row) (donor.Donor, error) {
	var m models.Donor
	if err := row.Scan(
		&m.ID, &m.TenantID, &m.Name, &m.Email,
		&m.LastUpdatedAt, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return donor.Donor{}, donor.ErrNotFound
		}
		return donor.Donor{}, err
	}
	return toDomainDonor(m), nil
}
