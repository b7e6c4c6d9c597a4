package importing

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/child"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donor"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/project"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/sponsorship"
	"github.com/mlongerich/DonationTracker-sub002/pkg/composables"
	"github.com/mlongerich/DonationTracker-sub002/pkg/configuration"
	"github.com/mlongerich/DonationTracker-sub002/pkg/eventbus"
)

// RowError is a row-local parse or resolution failure surfaced in the
// run summary.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result aggregates one import run. Needs-attention records are
// escalations to a human reviewer and are reported separately from
// row errors, which are real failures.
type Result struct {
	Succeeded              int        `json:"succeeded"`
	Failed                 int        `json:"failed"`
	Refunded               int        `json:"refunded"`
	Canceled               int        `json:"canceled"`
	NeedsAttention         int        `json:"needs_attention"`
	DuplicateSubscriptions int        `json:"duplicate_subscriptions"`
	Skipped                int        `json:"skipped"`
	RowErrors              []RowError `json:"row_errors"`
}

// Processed is the number of rows that produced or matched a donation
// record.
func (r *Result) Processed() int {
	return r.Succeeded + r.Failed + r.Refunded + r.Canceled + r.NeedsAttention + r.Skipped
}

// Importer runs the single-pass batch reconciliation over a payment
// export. Rows are processed strictly in order because later rows must
// observe earlier rows' writes (two consecutive rows for the same new
// donor must resolve to one record). Each row runs in its own
// transaction; the batch as a whole is not transactional.
type Importer struct {
	resolver  *identityResolver
	extractor *beneficiaryExtractor
	detector  *duplicateDetector

	sponsorships sponsorship.Repository
	donations    donation.Repository

	cfg configuration.ImportOptions
	log *logrus.Logger
	bus eventbus.EventBus

	inTx func(ctx context.Context, fn func(context.Context) error) error
}

func NewImporter(
	donors donor.Repository,
	children child.Repository,
	projects project.Repository,
	sponsorships sponsorship.Repository,
	donations donation.Repository,
	cfg configuration.ImportOptions,
	log *logrus.Logger,
	bus eventbus.EventBus,
) *Importer {
	return &Importer{
		resolver:     newIdentityResolver(donors, cfg.PlaceholderEmailDomain),
		extractor:    newBeneficiaryExtractor(children, projects),
		detector:     newDuplicateDetector(donations),
		sponsorships: sponsorships,
		donations:    donations,
		cfg:          cfg,
		log:          log,
		bus:          bus,
		inTx:         composables.InTx,
	}
}

// Run processes every record of the source. Row-level failures are
// recorded and never abort the batch; the returned error is non-nil
// only for unrecoverable conditions (unusable header, cancellation).
// Cancellation stops further rows and leaves committed rows intact.
func (i *Importer) Run(ctx context.Context, src *Source) (*Result, error) {
	layout, err := DetectLayout(src.Header)
	if err != nil {
		getMetrics().runsTotal.WithLabelValues("aborted").Inc()
		return nil, err
	}

	result := &Result{RowErrors: []RowError{}}
	for idx, rec := range src.Records {
		if err := ctx.Err(); err != nil {
			getMetrics().runsTotal.WithLabelValues("canceled").Inc()
			return result, err
		}

		// Operators count rows the way spreadsheets do: the header is
		// line 1, the first record line 2.
		rowNum := idx + 2

		row, err := ParseRow(layout, rowNum, rec, i.cfg.DefaultCurrency)
		if err != nil {
			i.recordRowError(result, rowNum, err)
			getMetrics().rowsTotal.WithLabelValues("malformed").Inc()
			continue
		}

		var created donation.Donation
		err = i.inTx(ctx, func(txCtx context.Context) error {
			var txErr error
			created, txErr = i.processRow(txCtx, row)
			return txErr
		})
		switch {
		case err == nil:
			i.tally(result, created)
			if i.bus != nil {
				i.bus.Publish(donation.NewCreatedEvent(created))
			}
		case errors.Is(err, donation.ErrDuplicate):
			// Idempotent re-import: the row is already on record.
			result.Skipped++
			getMetrics().rowsTotal.WithLabelValues("skipped").Inc()
		default:
			i.recordRowError(result, rowNum, err)
			getMetrics().rowsTotal.WithLabelValues("error").Inc()
		}
	}

	getMetrics().runsTotal.WithLabelValues("completed").Inc()
	i.log.WithFields(logrus.Fields{
		"succeeded":               result.Succeeded,
		"failed":                  result.Failed,
		"refunded":                result.Refunded,
		"canceled":                result.Canceled,
		"needs_attention":         result.NeedsAttention,
		"duplicate_subscriptions": result.DuplicateSubscriptions,
		"skipped":                 result.Skipped,
		"row_errors":              len(result.RowErrors),
	}).Info("import run finished")
	return result, nil
}

// processRow resolves one normalized row into a committed donation.
// It runs entirely inside the row's transaction.
func (i *Importer) processRow(ctx context.Context, row SourceRow) (donation.Donation, error) {
	d, err := i.resolver.Resolve(ctx, row)
	if err != nil {
		return donation.Donation{}, err
	}

	c, p, err := i.extractor.Resolve(ctx, row.Description)
	if err != nil {
		return donation.Donation{}, err
	}

	status, reason := ClassifyStatus(row.RawStatus)

	var duplicate bool
	if !c.IsZero() && row.SubscriptionID != "" {
		flagged, dupReason, err := i.detector.Check(ctx, c.ID(), row.SubscriptionID)
		if err != nil {
			return donation.Donation{}, err
		}
		if flagged {
			// A diverging subscription id overrides whatever the raw
			// status implied; a human has to adjudicate.
			duplicate = true
			status = donation.StatusNeedsAttention
			if reason == "" {
				reason = dupReason
			} else {
				reason = reason + "; " + dupReason
			}
		}
	}

	params := donation.NewParams{
		DonorID:                       d.ID(),
		Amount:                        row.Amount,
		Currency:                      row.Currency,
		DonatedAt:                     row.Date,
		PaymentMethod:                 row.PaymentMethod,
		ExternalChargeID:              row.ChargeID,
		ExternalSubscriptionID:        row.SubscriptionID,
		Status:                        status,
		DuplicateSubscriptionDetected: duplicate,
		NeedsAttentionReason:          reason,
	}
	if !c.IsZero() {
		childID := c.ID()
		params.ChildID = &childID
	}
	if !p.IsZero() {
		projectID := p.ID()
		params.ProjectID = &projectID
	}

	entity, err := donation.New(d.TenantID(), params)
	if err != nil {
		return donation.Donation{}, errors.Wrap(err, "build donation")
	}
	created, err := i.donations.Create(ctx, entity)
	if err != nil {
		return donation.Donation{}, err
	}

	if !c.IsZero() && !p.IsZero() && row.SubscriptionID != "" && !duplicate {
		if err := i.ensureSponsorship(ctx, d, c, p, row.Amount); err != nil {
			return donation.Donation{}, err
		}
	}
	return created, nil
}

// ensureSponsorship links the donor to the child once. The monthly
// amount is taken from the first donation seen for the link.
func (i *Importer) ensureSponsorship(
	ctx context.Context,
	d donor.Donor,
	c child.Child,
	p project.Project,
	amount int64,
) error {
	_, err := i.sponsorships.GetByDonorAndChild(ctx, d.ID(), c.ID())
	if err == nil {
		return nil
	}
	if !errors.Is(err, sponsorship.ErrNotFound) {
		return errors.Wrap(err, "lookup sponsorship")
	}
	_, err = i.sponsorships.Create(ctx, sponsorship.New(d.TenantID(), d.ID(), c.ID(), p.ID(), amount))
	if err != nil {
		return errors.Wrap(err, "create sponsorship")
	}
	return nil
}

func (i *Importer) recordRowError(result *Result, rowNum int, err error) {
	result.RowErrors = append(result.RowErrors, RowError{Row: rowNum, Reason: rowErrorReason(err)})
	i.log.WithFields(logrus.Fields{"row": rowNum, "error": err.Error()}).Warn("import row failed")
}

func rowErrorReason(err error) string {
	var malformed *MalformedRowError
	if errors.As(err, &malformed) {
		return malformed.Reason
	}
	var identity *IdentityResolutionError
	if errors.As(err, &identity) {
		return "donor resolution failed: " + identity.Err.Error()
	}
	return err.Error()
}

func (i *Importer) tally(result *Result, d donation.Donation) {
	switch d.Status() {
	case donation.StatusSucceeded:
		result.Succeeded++
	case donation.StatusFailed:
		result.Failed++
	case donation.StatusRefunded:
		result.Refunded++
	case donation.StatusCanceled:
		result.Canceled++
	case donation.StatusNeedsAttention:
		result.NeedsAttention++
	}
	if d.DuplicateSubscriptionDetected() {
		result.DuplicateSubscriptions++
	}
	getMetrics().rowsTotal.WithLabelValues(string(d.Status())).Inc()
}
