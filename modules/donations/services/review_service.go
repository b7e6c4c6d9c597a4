package services

import (
	"context"
	"sort"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
	"github.com/mlongerich/DonationTracker-sub002/pkg/composables"
	"github.com/mlongerich/DonationTracker-sub002/pkg/eventbus"
)

// searchScanCap bounds how many review entries a fuzzy search loads
// before ranking client-side.
const searchScanCap = 1000

// QueueParams filters the operator review queue.
type QueueParams struct {
	Statuses []donation.Status
	From     *time.Time
	To       *time.Time
	Q        string
	Limit    int
	Offset   int
}

// ReviewService serves the manual adjudication queue: every donation
// whose status is not succeeded, plus unconditional operator status
// overrides.
type ReviewService struct {
	repo donation.Repository
	bus  eventbus.EventBus

	inTx func(ctx context.Context, fn func(context.Context) error) error
}

func NewReviewService(repo donation.Repository, bus eventbus.EventBus) *ReviewService {
	return &ReviewService{
		repo: repo,
		bus:  bus,
		inTx: composables.InTx,
	}
}

// Queue returns review entries matching params. When Q is set, entries
// are fuzzy-ranked against donor name and email before pagination.
func (s *ReviewService) Queue(ctx context.Context, params *QueueParams) ([]donation.ReviewEntry, int64, error) {
	if params == nil {
		params = &QueueParams{}
	}
	for _, st := range params.Statuses {
		if !st.IsValid() {
			return nil, 0, errors.Wrapf(donation.ErrInvalidStatus, "%q", st)
		}
		// The queue holds only non-succeeded donations.
		if st == donation.StatusSucceeded {
			return nil, 0, errors.Wrapf(donation.ErrInvalidStatus, "%q is not reviewable", st)
		}
	}

	findParams := &donation.ReviewFindParams{
		Statuses: params.Statuses,
		From:     params.From,
		To:       params.To,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if params.Q == "" {
		return s.repo.FindReview(ctx, findParams)
	}

	// Fuzzy search ranks in memory over a bounded window.
	findParams.Limit = searchScanCap
	findParams.Offset = 0
	entries, _, err := s.repo.FindReview(ctx, findParams)
	if err != nil {
		return nil, 0, err
	}

	type ranked struct {
		entry donation.ReviewEntry
		rank  int
	}
	matches := make([]ranked, 0, len(entries))
	for _, e := range entries {
		r := fuzzy.RankMatchNormalizedFold(params.Q, e.DonorName)
		if er := fuzzy.RankMatchNormalizedFold(params.Q, e.DonorEmail); er >= 0 && (r < 0 || er < r) {
			r = er
		}
		if r < 0 {
			continue
		}
		matches = append(matches, ranked{entry: e, rank: r})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].rank < matches[j].rank })

	total := int64(len(matches))
	start := params.Offset
	if start > len(matches) {
		start = len(matches)
	}
	end := len(matches)
	if params.Limit > 0 && start+params.Limit < end {
		end = start + params.Limit
	}
	out := make([]donation.ReviewEntry, 0, end-start)
	for _, m := range matches[start:end] {
		out = append(out, m.entry)
	}
	return out, total, nil
}

// UpdateStatus persists an operator override. The new status only has
// to be part of the enum; there is no business-rule gate on manual
// corrections, and concurrent edits are last-write-wins.
func (s *ReviewService) UpdateStatus(ctx context.Context, id uuid.UUID, status donation.Status) (donation.Donation, error) {
	if !status.IsValid() {
		return donation.Donation{}, errors.Wrapf(donation.ErrInvalidStatus, "%q", status)
	}

	var updated donation.Donation
	var old donation.Status
	err := s.inTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		old = existing.Status()
		if err := s.repo.UpdateStatus(txCtx, id, status); err != nil {
			return err
		}
		updated, err = s.repo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return donation.Donation{}, err
	}
	if s.bus != nil {
		s.bus.Publish(donation.NewStatusChangedEvent(updated, old))
	}
	return updated, nil
}
