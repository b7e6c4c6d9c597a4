package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/child"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/infrastructure/persistence/models"
	"github.com/mlongerich/DonationTracker-sub002/pkg/repo"
)

const childColumns = `id, tenant_id, name, created_at, updated_at`

type ChildRepository struct{}

func NewChildRepository() child.Repository {
	return &ChildRepository{}
}

func (r *ChildRepository) GetByID(ctx context.Context, id uuid.UUID) (child.Child, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return child.Child{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+childColumns+`
		FROM children
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)

	return scanChild(row)
}

func (r *ChildRepository) GetByName(ctx context.Context, name string) (child.Child, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return child.Child{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+childColumns+`
		FROM children
		WHERE tenant_id = $1 AND name = $2
	`, tenantID, strings.TrimSpace(name))

	return scanChild(row)
}

func (r *ChildRepository) Create(ctx context.Context, c child.Child) (child.Child, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return child.Child{}, err
	}

	now := time.Now().UTC()
	row := tx.QueryRow(ctx, `
		INSERT INTO children (tenant_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING `+childColumns+`
	`, tenantID, c.Name(), now)

	created, err := scanChild(row)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return child.Child{}, child.ErrNameTaken
		}
		return child.Child{}, gerrors.Wrap(err, "create child")
	}
	return created, nil
}

func scanChild(row pgx.Row) (child.Child, error) {
	var m models.Child
	if err := row.Scan(&m.ID, &m.TenantID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return child.Child{}, child.ErrNotFound
		}
		return child.Child{}, err
	}
	return toDomainChild(m), nil
}
