package child

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = gerrors.New("child not found")
	ErrNameTaken = gerrors.New("child name already exists")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Child, error)
	// GetByName matches the exact (trimmed) name.
	GetByName(ctx context.Context, name string) (Child, error)
	Create(ctx context.Context, c Child) (Child, error)
}
