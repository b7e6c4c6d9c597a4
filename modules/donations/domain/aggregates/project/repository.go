package project

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound              = gerrors.New("project not found")
	ErrChildAlreadySponsored = gerrors.New("child already has a sponsorship project")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	// GetSponsorshipByChild returns the one sponsorship-type project
	// associated with the child.
	GetSponsorshipByChild(ctx context.Context, childID uuid.UUID) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
}
