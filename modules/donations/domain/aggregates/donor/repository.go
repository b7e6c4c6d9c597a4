package donor

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound   = gerrors.New("donor not found")
	ErrEmailTaken = gerrors.New("donor email already exists")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Donor, error)
	// GetByEmail looks a donor up case-insensitively.
	GetByEmail(ctx context.Context, email string) (Donor, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Donor, int64, error)
	Create(ctx context.Context, d Donor) (Donor, error)
	Update(ctx context.Context, d Donor) error
}
