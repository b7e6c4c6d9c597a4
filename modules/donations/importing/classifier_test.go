package importing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
)

func TestClassifyStatus_KnownValues(t *testing.T) {
	cases := map[string]donation.Status{
		"succeeded": donation.StatusSucceeded,
		"paid":      donation.StatusSucceeded,
		"SUCCEEDED": donation.StatusSucceeded,
		"failed":    donation.StatusFailed,
		"refunded":  donation.StatusRefunded,
		"canceled":  donation.StatusCanceled,
		"cancelled": donation.StatusCanceled,
	}
	for raw, want := range cases {
		got, reason := ClassifyStatus(raw)
		require.Equal(t, want, got, raw)
		require.Empty(t, reason, raw)
	}
}

func TestClassifyStatus_UnknownValuesNeverDefaultToSucceeded(t *testing.T) {
	for _, raw := range []string{"pending", "disputed", "chargeback", "???"} {
		got, reason := ClassifyStatus(raw)
		require.Equal(t, donation.StatusNeedsAttention, got, raw)
		require.NotEmpty(t, reason, raw)
		require.Contains(t, reason, raw)
	}
}

func TestClassifyStatus_EmptyMeansSettled(t *testing.T) {
	got, reason := ClassifyStatus("")
	require.Equal(t, donation.StatusSucceeded, got)
	require.Empty(t, reason)
}
