package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/project"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/infrastructure/persistence/models"
	"github.com/mlongerich/DonationTracker-sub002/pkg/repo"
)

const projectColumns = `id, tenant_id, title, project_type, child_id, created_at, updated_at`

type ProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return project.Project{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)

	return scanProject(row)
}

func (r *ProjectRepository) GetSponsorshipByChild(ctx context.Context, childID uuid.UUID) (project.Project, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return project.Project{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE tenant_id = $1 AND project_type = $2 AND child_id = $3
	`, tenantID, string(project.TypeSponsorship), childID)

	return scanProject(row)
}

func (r *ProjectRepository) Create(ctx context.Context, p project.Project) (project.Project, error) {
	tx, tenantID, err := useTenantTx(ctx)
	if err != nil {
		return project.Project{}, err
	}

	now := time.Now().UTC()
	row := tx.QueryRow(ctx, `
		INSERT INTO projects (tenant_id, title, project_type, child_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+projectColumns+`
	`, tenantID, p.Title(), string(p.ProjectType()), p.ChildID(), now)

	created, err := scanProject(row)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return project.Project{}, project.ErrChildAlreadySponsored
		}
		return project.Project{}, gerrors.Wrap(err, "create project")
	}
	return created, nil
}

func scanProject(row pgx.Row) (project.Project, error) {
	var m models.Project
	if err := row.Scan(
		&m.ID, &m.TenantID, &m.Title, &m.ProjectType, &m.ChildID,
		&m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, err
	}
	return toDomainProject(m), nil
}
