package donation

import (
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Status is the closed payment lifecycle vocabulary. needs_attention is
// not an error state: it marks a record a human must adjudicate.
type Status string

const (
	StatusSucceeded      Status = "succeeded"
	StatusFailed         Status = "failed"
	StatusRefunded       Status = "refunded"
	StatusCanceled       Status = "canceled"
	StatusNeedsAttention Status = "needs_attention"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusRefunded, StatusCanceled, StatusNeedsAttention:
		return true
	}
	return false
}

func Statuses() []Status {
	return []Status{
		StatusSucceeded,
		StatusFailed,
		StatusRefunded,
		StatusCanceled,
		StatusNeedsAttention,
	}
}

var (
	ErrInvalidAmount = gerrors.New("donation amount must be a positive number of minor units")
	ErrNoDonor       = gerrors.New("donation requires a donor")
	ErrInvalidStatus = gerrors.New("invalid donation status")
)

// Donation is the reconciled payment record.
type Donation struct {
	tenantID                      uuid.UUID
	id                            uuid.UUID
	donorID                       uuid.UUID
	projectID                     *uuid.UUID
	childID                       *uuid.UUID
	amount                        int64
	currency                      string
	donatedAt                     time.Time
	paymentMethod                 string
	externalChargeID              string
	externalSubscriptionID        string
	status                        Status
	duplicateSubscriptionDetected bool
	needsAttentionReason          string
	createdAt                     time.Time
	updatedAt                     time.Time
}

type NewParams struct {
	DonorID                       uuid.UUID
	ProjectID                     *uuid.UUID
	ChildID                       *uuid.UUID
	Amount                        int64
	Currency                      string
	DonatedAt                     time.Time
	PaymentMethod                 string
	ExternalChargeID              string
	ExternalSubscriptionID        string
	Status                        Status
	DuplicateSubscriptionDetected bool
	NeedsAttentionReason          string
}

func New(tenantID uuid.UUID, params NewParams) (Donation, error) {
	if params.Amount <= 0 {
		return Donation{}, ErrInvalidAmount
	}
	if params.DonorID == uuid.Nil {
		return Donation{}, ErrNoDonor
	}
	status := params.Status
	if status == "" {
		status = StatusSucceeded
	}
	if !status.IsValid() {
		return Donation{}, ErrInvalidStatus
	}
	return Donation{
		tenantID:                      tenantID,
		donorID:                       params.DonorID,
		projectID:                     params.ProjectID,
		childID:                       params.ChildID,
		amount:                        params.Amount,
		currency:                      strings.ToUpper(strings.TrimSpace(params.Currency)),
		donatedAt:                     params.DonatedAt,
		paymentMethod:                 strings.TrimSpace(params.PaymentMethod),
		externalChargeID:              strings.TrimSpace(params.ExternalChargeID),
		externalSubscriptionID:        strings.TrimSpace(params.ExternalSubscriptionID),
		status:                        status,
		duplicateSubscriptionDetected: params.DuplicateSubscriptionDetected,
		needsAttentionReason:          strings.TrimSpace(params.NeedsAttentionReason),
	}, nil
}

func Hydrate(
	tenantID uuid.UUID,
	id uuid.UUID,
	params NewParams,
	createdAt time.Time,
	updatedAt time.Time,
) Donation {
	return Donation{
		tenantID:                      tenantID,
		id:                            id,
		donorID:                       params.DonorID,
		projectID:                     params.ProjectID,
		childID:                       params.ChildID,
		amount:                        params.Amount,
		currency:                      params.Currency,
		donatedAt:                     params.DonatedAt,
		paymentMethod:                 params.PaymentMethod,
		externalChargeID:              params.ExternalChargeID,
		externalSubscriptionID:        params.ExternalSubscriptionID,
		status:                        params.Status,
		duplicateSubscriptionDetected: params.DuplicateSubscriptionDetected,
		needsAttentionReason:          params.NeedsAttentionReason,
		createdAt:                     createdAt,
		updatedAt:                     updatedAt,
	}
}

func (d Donation) TenantID() uuid.UUID             { return d.tenantID }
func (d Donation) ID() uuid.UUID                   { return d.id }
func (d Donation) DonorID() uuid.UUID              { return d.donorID }
func (d Donation) ProjectID() *uuid.UUID           { return d.projectID }
func (d Donation) ChildID() *uuid.UUID             { return d.childID }
func (d Donation) Amount() int64                   { return d.amount }
func (d Donation) Currency() string                { return d.currency }
func (d Donation) DonatedAt() time.Time            { return d.donatedAt }
func (d Donation) PaymentMethod() string           { return d.paymentMethod }
func (d Donation) ExternalChargeID() string        { return d.externalChargeID }
func (d Donation) ExternalSubscriptionID() string  { return d.externalSubscriptionID }
func (d Donation) Status() Status                  { return d.status }
func (d Donation) DuplicateSubscriptionDetected() bool { return d.duplicateSubscriptionDetected }
func (d Donation) NeedsAttentionReason() string    { return d.needsAttentionReason }
func (d Donation) CreatedAt() time.Time            { return d.createdAt }
func (d Donation) UpdatedAt() time.Time            { return d.updatedAt }
func (d Donation) IsZero() bool                    { return d.id == uuid.Nil && d.donorID == uuid.Nil }

// Recurring reports whether the donation is tied to an external
// subscription.
func (d Donation) Recurring() bool { return d.externalSubscriptionID != "" }
