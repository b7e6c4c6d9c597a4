package donation

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound = gerrors.New("donation not found")
	// ErrDuplicate marks a uniqueness violation on one of the
	// idempotency keys; re-imports treat it as "already imported".
	ErrDuplicate = gerrors.New("donation already imported")
)

// ReviewFindParams filters the operator review queue. Statuses defaults
// to every non-succeeded status.
type ReviewFindParams struct {
	Statuses []Status
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// ReviewEntry is the read model served to the review UI: the donation
// plus the donor identity needed to adjudicate it.
type ReviewEntry struct {
	Donation   Donation
	DonorName  string
	DonorEmail string
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Donation, error)
	Create(ctx context.Context, d Donation) (Donation, error)
	// UpdateStatus persists an operator override unconditionally.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	// SubscriptionIDsByChild returns the distinct non-empty external
	// subscription ids already on record for the child.
	SubscriptionIDsByChild(ctx context.Context, childID uuid.UUID) ([]string, error)
	// FindReview returns non-succeeded donations for operator review.
	FindReview(ctx context.Context, params *ReviewFindParams) ([]ReviewEntry, int64, error)
}
