package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
)

type mockDonationRepo struct {
	entries    []donation.ReviewEntry
	byID       map[uuid.UUID]donation.Donation
	lastParams *donation.ReviewFindParams
	statuses   map[uuid.UUID]donation.Status
}

func newMockDonationRepo() *mockDonationRepo {
	return &mockDonationRepo{
		byID:     map[uuid.UUID]donation.Donation{},
		statuses: map[uuid.UUID]donation.Status{},
	}
}

func (m *mockDonationRepo) GetByID(ctx context.Context, id uuid.UUID) (donation.Donation, error) {
	if d, ok := m.byID[id]; ok {
		return d, nil
	}
	return donation.Donation{}, donation.ErrNotFound
}

func (m *mockDonationRepo) Create(ctx context.Context, d donation.Donation) (donation.Donation, error) {
	return d, nil
}

func (m *mockDonationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status donation.Status) error {
	d, ok := m.byID[id]
	if !ok {
		return donation.ErrNotFound
	}
	m.statuses[id] = status
	m.byID[id] = donation.Hydrate(d.TenantID(), d.ID(), donation.NewParams{
		DonorID:   d.DonorID(),
		Amount:    d.Amount(),
		Currency:  d.Currency(),
		DonatedAt: d.DonatedAt(),
		Status:    status,
	}, d.CreatedAt(), time.Now())
	return nil
}

func (m *mockDonationRepo) SubscriptionIDsByChild(ctx context.Context, childID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (m *mockDonationRepo) FindReview(ctx context.Context, params *donation.ReviewFindParams) ([]donation.ReviewEntry, int64, error) {
	m.lastParams = params
	return m.entries, int64(len(m.entries)), nil
}

func reviewEntry(t *testing.T, name, email string, status donation.Status) donation.ReviewEntry {
	t.Helper()
	d := donation.Hydrate(uuid.New(), uuid.New(), donation.NewParams{
		DonorID:   uuid.New(),
		Amount:    1000,
		Currency:  "USD",
		DonatedAt: time.Now(),
		Status:    status,
	}, time.Now(), time.Now())
	return donation.ReviewEntry{Donation: d, DonorName: name, DonorEmail: email}
}

func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func TestReviewService_Queue_RejectsUnknownStatus(t *testing.T) {
	svc := NewReviewService(newMockDonationRepo(), nil)

	_, _, err := svc.Queue(context.Background(), &QueueParams{
		Statuses: []donation.Status{"bogus"},
	})
	require.ErrorIs(t, err, donation.ErrInvalidStatus)
}

func TestReviewService_Queue_RejectsSucceededFilter(t *testing.T) {
	svc := NewReviewService(newMockDonationRepo(), nil)

	_, _, err := svc.Queue(context.Background(), &QueueParams{
		Statuses: []donation.Status{donation.StatusSucceeded},
	})
	require.ErrorIs(t, err, donation.ErrInvalidStatus)
}

func TestReviewService_Queue_PassesFiltersThrough(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewReviewService(repo, nil)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := svc.Queue(context.Background(), &QueueParams{
		Statuses: []donation.Status{donation.StatusNeedsAttention},
		From:     &from,
		Limit:    10,
		Offset:   20,
	})
	require.NoError(t, err)
	require.Equal(t, []donation.Status{donation.StatusNeedsAttention}, repo.lastParams.Statuses)
	require.Equal(t, &from, repo.lastParams.From)
	require.Equal(t, 10, repo.lastParams.Limit)
	require.Equal(t, 20, repo.lastParams.Offset)
}

func TestReviewService_Queue_FuzzySearchFiltersAndRanks(t *testing.T) {
	repo := newMockDonationRepo()
	repo.entries = []donation.ReviewEntry{
		reviewEntry(t, "Jane Smith", "jane@x.com", donation.StatusNeedsAttention),
		reviewEntry(t, "Bob Brown", "bob@x.com", donation.StatusFailed),
		reviewEntry(t, "Janet Jones", "janet@y.com", donation.StatusRefunded),
	}
	svc := NewReviewService(repo, nil)

	entries, total, err := svc.Queue(context.Background(), &QueueParams{Q: "jane"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.NotEqual(t, "Bob Brown", e.DonorName)
	}
	// The search window ignores caller pagination.
	require.Equal(t, searchScanCap, repo.lastParams.Limit)
	require.Zero(t, repo.lastParams.Offset)
}

func TestReviewService_Queue_FuzzySearchPaginatesAfterRanking(t *testing.T) {
	repo := newMockDonationRepo()
	repo.entries = []donation.ReviewEntry{
		reviewEntry(t, "Jane A", "a@x.com", donation.StatusFailed),
		reviewEntry(t, "Jane B", "b@x.com", donation.StatusFailed),
		reviewEntry(t, "Jane C", "c@x.com", donation.StatusFailed),
	}
	svc := NewReviewService(repo, nil)

	entries, total, err := svc.Queue(context.Background(), &QueueParams{Q: "jane", Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, entries, 1)
}

func TestReviewService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewReviewService(newMockDonationRepo(), nil)
	svc.inTx = passthroughTx

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "bogus")
	require.ErrorIs(t, err, donation.ErrInvalidStatus)
}

func TestReviewService_UpdateStatus_NotFound(t *testing.T) {
	svc := NewReviewService(newMockDonationRepo(), nil)
	svc.inTx = passthroughTx

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), donation.StatusSucceeded)
	require.ErrorIs(t, err, donation.ErrNotFound)
}

func TestReviewService_UpdateStatus_PersistsOverrideUnconditionally(t *testing.T) {
	repo := newMockDonationRepo()
	entry := reviewEntry(t, "Jane", "jane@x.com", donation.StatusNeedsAttention)
	repo.byID[entry.Donation.ID()] = entry.Donation

	svc := NewReviewService(repo, nil)
	svc.inTx = passthroughTx

	updated, err := svc.UpdateStatus(context.Background(), entry.Donation.ID(), donation.StatusSucceeded)
	require.NoError(t, err)
	require.Equal(t, donation.StatusSucceeded, updated.Status())
	require.Equal(t, donation.StatusSucceeded, repo.statuses[entry.Donation.ID()])
}
