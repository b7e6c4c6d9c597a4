package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/services"
)

type stubDonationRepo struct {
	entries []donation.ReviewEntry
}

func (s *stubDonationRepo) GetByID(ctx context.Context, id uuid.UUID) (donation.Donation, error) {
	return donation.Donation{}, donation.ErrNotFound
}

func (s *stubDonationRepo) Create(ctx context.Context, d donation.Donation) (donation.Donation, error) {
	return d, nil
}

func (s *stubDonationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status donation.Status) error {
	return donation.ErrNotFound
}

func (s *stubDonationRepo) SubscriptionIDsByChild(ctx context.Context, childID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (s *stubDonationRepo) FindReview(ctx context.Context, params *donation.ReviewFindParams) ([]donation.ReviewEntry, int64, error) {
	return s.entries, int64(len(s.entries)), nil
}

func newTestRouter(repo donation.Repository) *mux.Router {
	r := mux.NewRouter()
	NewReviewAPIController(services.NewReviewService(repo, nil)).Register(r)
	return r
}

func TestReviewAPI_List(t *testing.T) {
	d := donation.Hydrate(uuid.New(), uuid.New(), donation.NewParams{
		DonorID:              uuid.New(),
		Amount:               2500,
		Currency:             "USD",
		DonatedAt:            time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:               donation.StatusNeedsAttention,
		NeedsAttentionReason: "unrecognized payment status \"disputed\"",
	}, time.Now(), time.Now())
	repo := &stubDonationRepo{entries: []donation.ReviewEntry{
		{Donation: d, DonorName: "Jane", DonorEmail: "jane@x.com"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/donations/api/review", nil)
	rr := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, `"total":1`)
	require.Contains(t, body, `"status":"needs_attention"`)
	require.Contains(t, body, `"donor_email":"jane@x.com"`)
	require.Contains(t, body, `"amount_display":"$25.00"`)
}

func TestReviewAPI_List_BadQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/donations/api/review?status=bogus", nil)
	rr := httptest.NewRecorder()
	newTestRouter(&stubDonationRepo{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "DONATIONS_INVALID_QUERY")
}

func TestReviewAPI_UpdateStatus_InvalidID(t *testing.T) {
	req := httptest.NewRequest(
		http.MethodPost,
		"/donations/api/review/not-a-uuid/status",
		strings.NewReader(`{"status":"succeeded"}`),
	)
	rr := httptest.NewRecorder()
	newTestRouter(&stubDonationRepo{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "DONATIONS_INVALID_ID")
}

func TestReviewAPI_UpdateStatus_InvalidStatus(t *testing.T) {
	req := httptest.NewRequest(
		http.MethodPost,
		"/donations/api/review/"+uuid.NewString()+"/status",
		strings.NewReader(`{"status":"bogus"}`),
	)
	rr := httptest.NewRecorder()
	newTestRouter(&stubDonationRepo{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "DONATIONS_INVALID_STATUS")
}
