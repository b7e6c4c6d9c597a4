package importing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
)

func TestDuplicateDetector_NoPriorSubscriptions(t *testing.T) {
	repo := newMockDonationRepo()
	d := newDuplicateDetector(repo)

	flagged, reason, err := d.Check(context.Background(), uuid.New(), "sub_A")
	require.NoError(t, err)
	require.False(t, flagged)
	require.Empty(t, reason)
}

func TestDuplicateDetector_SameSubscriptionIsNotAConflict(t *testing.T) {
	repo := newMockDonationRepo()
	childID := uuid.New()
	repo.subsByChild[childID] = []string{"sub_A"}
	d := newDuplicateDetector(repo)

	flagged, _, err := d.Check(context.Background(), childID, "sub_A")
	require.NoError(t, err)
	require.False(t, flagged)
}

func TestDuplicateDetector_DifferentSubscriptionFlags(t *testing.T) {
	repo := newMockDonationRepo()
	childID := uuid.New()
	repo.subsByChild[childID] = []string{"sub_A"}
	d := newDuplicateDetector(repo)

	flagged, reason, err := d.Check(context.Background(), childID, "sub_B")
	require.NoError(t, err)
	require.True(t, flagged)
	require.Contains(t, reason, "sub_A")
	require.Contains(t, reason, "sub_B")
}

func TestDuplicateDetector_SkipsRowsWithoutSubscriptionOrChild(t *testing.T) {
	repo := newMockDonationRepo()
	d := newDuplicateDetector(repo)

	flagged, _, err := d.Check(context.Background(), uuid.Nil, "sub_A")
	require.NoError(t, err)
	require.False(t, flagged)

	flagged, _, err = d.Check(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	require.False(t, flagged)
	require.Zero(t, repo.subsCalls)
}

var _ donation.Repository = (*mockDonationRepo)(nil)
