package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/infrastructure/persistence/models"
	"github.com/mlongerich/DonationTracker-sub002/pkg/repo"
)

const donationColumns = `id, tenant_id, donor_id, project_id, child_id, amount, currency, donated_at,
	payment_method, external_charge_id, external_subscription_id, status,
	duplicate_subscription_detected, needs_attention_reason, created_at, updated_at`

type DonationRepository struct{}

func NewDonationRepository() donation.Repository {
	return &DonationRepository{}
}

func (r *DonationRepository) GetByID(ctx context.Context, id uuid.UUID) (donation.Donation, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return donation.Donation{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+donationColumns+`
		FROM donations
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)

	return scanDonation(row)
}

func (r *DonationRepository) Create(ctx context.Context, d donation.Donation) (donation.Donation, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return donation.Donation{}, err
	}

	now := time.Now().UTC()
	row := tx.QueryRow(ctx, `
		INSERT INTO donations (
			tenant_id, donor_id, project_id, child_id, amount, currency, donated_at,
			payment_method, external_charge_id, external_subscription_id, status,
			duplicate_subscription_detected, needs_attention_reason, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$14)
		RETURNING `+donationColumns+`
	`,
		tenantID,
		d.DonorID(),
		d.ProjectID(),
		d.ChildID(),
		d.Amount(),
		d.Currency(),
		d.DonatedAt(),
		nullString(d.PaymentMethod()),
		nullString(d.ExternalChargeID()),
		nullString(d.ExternalSubscriptionID()),
		string(d.Status()),
		d.DuplicateSubscriptionDetected(),
		nullString(d.NeedsAttentionReason()),
		now,
	)

	created, err := scanDonation(row)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return donation.Donation{}, donation.ErrDuplicate
		}
		return donation.Donation{}, gerrors.Wrap(err, "create donation")
	}
	return created, nil
}

func (r *DonationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status donation.Status) error {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE donations
		SET status = $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id, string(status), time.Now().UTC())
	if err != nil {
		return gerrors.Wrap(err, "update donation status")
	}
	if tag.RowsAffected() == 0 {
		return donation.ErrNotFound
	}
	return nil
}

func (r *DonationRepository) SubscriptionIDsByChild(ctx context.Context, childID uuid.UUID) ([]string, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT DISTINCT external_subscription_id
		FROM donations
		WHERE tenant_id = $1 AND child_id = $2 AND external_subscription_id IS NOT NULL
		ORDER BY external_subscription_id
	`, tenantID, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *DonationRepository) FindReview(ctx context.Context, params *donation.ReviewFindParams) ([]donation.ReviewEntry, int64, error) {
	if params == nil {
		params = &donation.ReviewFindParams{}
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

	where := []string{"d.tenant_id = $1"}
	args := []any{tenantID}

	if len(params.Statuses) > 0 {
		statuses := make([]string, 0, len(params.Statuses))
		for _, s := range params.Statuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		where = append(where, fmt.Sprintf("d.status = ANY($%d)", len(args)))
	} else {
		args = append(args, string(donation.StatusSucceeded))
		where = append(where, fmt.Sprintf("d.status <> $%d", len(args)))
	}
	if params.From != nil {
		args = append(args, *params.From)
		where = append(where, fmt.Sprintf("d.donated_at >= $%d", len(args)))
	}
	if params.To != nil {
		args = append(args, *params.To)
		where = append(where, fmt.Sprintf("d.donated_at <= $%d", len(args)))
	}

	query := `
		SELECT ` + prefixedDonationColumns("d") + `, don.name, don.email
		FROM donations d
		JOIN donors don ON don.tenant_id = d.tenant_id AND don.id = d.donor_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY d.donated_at DESC, d.id
	` + repo.FormatLimitOffset(limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []donation.ReviewEntry
	for rows.Next() {
		var m models.Donation
		var donorName, donorEmail string
		if err := rows.Scan(
			&m.ID, &m.TenantID, &m.DonorID, &m.ProjectID, &m.ChildID,
			&m.Amount, &m.Currency, &m.DonatedAt, &m.PaymentMethod,
			&m.ExternalChargeID, &m.ExternalSubscriptionID, &m.Status,
			&m.DuplicateSubscriptionDetected, &m.NeedsAttentionReason,
			&m.CreatedAt, &m.UpdatedAt,
			&donorName, &donorEmail,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, donation.ReviewEntry{
			Donation:   toDomainDonation(m),
			DonorName:  donorName,
			DonorEmail: donorEmail,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM donations d
		WHERE `+strings.Join(where, " AND "),
		args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func prefixedDonationColumns(alias string) string {
	cols := strings.Split(donationColumns, ",")
	for i := range cols {
		cols[i] = alias + "." + strings.TrimSpace(cols[i])
	}
	return strings.Join(cols, ", ")
}

func scanDonation(row pgx.Row) (donation.Donation, error) {
	var m models.Donation
	if err := row.Scan(
		&m.ID, &m.TenantID, &m.DonorID, &m.ProjectID, &m.ChildID,
		&m.Amount, &m.Currency, &m.DonatedAt, &m.PaymentMethod,
		&m.ExternalChargeID, &m.ExternalSubscriptionID, &m.Status,
		&m.DuplicateSubscriptionDetected, &m.NeedsAttentionReason,
		&m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return donation.Donation{}, donation.ErrNotFound
		}
		return donation.Donation{}, err
	}
	return toDomainDonation(m), nil
}
