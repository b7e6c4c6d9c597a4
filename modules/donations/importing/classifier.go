package importing

import (
	"fmt"
	"strings"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
)

var statusTable = map[string]donation.Status{
	"succeeded": donation.StatusSucceeded,
	"paid":      donation.StatusSucceeded,
	"failed":    donation.StatusFailed,
	"refunded":  donation.StatusRefunded,
	"canceled":  donation.StatusCanceled,
	"cancelled": donation.StatusCanceled,
}

// ClassifyStatus maps a processor status string to a donation status.
// Every input classifies: unrecognized values land in needs_attention
// with a reason naming the raw value, never an error. An absent status
// (exports without a status column, e.g. cash ledgers) means the
// charge settled, so it maps to succeeded.
func ClassifyStatus(raw string) (donation.Status, string) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return donation.StatusSucceeded, ""
	}
	if s, ok := statusTable[normalized]; ok {
		return s, ""
	}
	return donation.StatusNeedsAttention, fmt.Sprintf("unrecognized payment status %q", raw)
}
