package sponsorship

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = gerrors.New("sponsorship not found")

type Repository interface {
	GetByDonorAndChild(ctx context.Context, donorID, childID uuid.UUID) (Sponsorship, error)
	Create(ctx context.Context, s Sponsorship) (Sponsorship, error)
}
