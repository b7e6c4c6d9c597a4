package importing

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
)

// duplicateDetector flags beneficiaries that accumulate more than one
// distinct recurring-payment identifier. A child should have exactly
// one active subscription; a second identifier means a re-subscription
// or duplicate signup that a human must adjudicate.
type duplicateDetector struct {
	donations donation.Repository
}

func newDuplicateDetector(donations donation.Repository) *duplicateDetector {
	return &duplicateDetector{donations: donations}
}

// Check reports whether the child already has a different subscription
// id on record. The returned reason names the conflicting prior
// identifier.
func (d *duplicateDetector) Check(ctx context.Context, childID uuid.UUID, subscriptionID string) (bool, string, error) {
	if subscriptionID == "" || childID == uuid.Nil {
		return false, "", nil
	}
	prior, err := d.donations.SubscriptionIDsByChild(ctx, childID)
	if err != nil {
		return false, "", errors.Wrap(err, "load prior subscription ids")
	}
	for _, id := range prior {
		if id != subscriptionID {
			reason := fmt.Sprintf(
				"child already linked to subscription %s, row carries %s",
				id, subscriptionID,
			)
			return true, reason, nil
		}
	}
	return false, "", nil
}
