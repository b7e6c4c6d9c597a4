package models

import (
	"time"

	"github.com/google/uuid"
)

type Donor struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	Name          string
	Email         string
	LastUpdatedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Child struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Project struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Title       string
	ProjectType string
	ChildID     *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Sponsorship struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	DonorID       uuid.UUID
	ChildID       uuid.UUID
	ProjectID     uuid.UUID
	MonthlyAmount int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Donation struct {
	ID                            uuid.UUID
	TenantID                      uuid.UUID
	DonorID                       uuid.UUID
	ProjectID                     *uuid.UUID
	ChildID                       *uuid.UUID
	Amount                        int64
	Currency                      string
	DonatedAt                     time.Time
	PaymentMethod                 *string
	ExternalChargeID              *string
	ExternalSubscriptionID        *string
	Status                        string
	DuplicateSubscriptionDetected bool
	NeedsAttentionReason          *string
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
}
