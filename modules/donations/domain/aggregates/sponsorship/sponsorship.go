package sponsorship

import (
	"time"

	"github.com/google/uuid"
)

// Sponsorship links one donor, one child and the child's sponsorship
// project. The monthly amount is derived from the first donation seen
// for the link.
type Sponsorship struct {
	tenantID      uuid.UUID
	id            uuid.UUID
	donorID       uuid.UUID
	childID       uuid.UUID
	projectID     uuid.UUID
	monthlyAmount int64
	createdAt     time.Time
	updatedAt     time.Time
}

func New(tenantID, donorID, childID, projectID uuid.UUID, monthlyAmount int64) Sponsorship {
	return Sponsorship{
		tenantID:      tenantID,
		donorID:       donorID,
		childID:       childID,
		projectID:     projectID,
		monthlyAmount: monthlyAmount,
	}
}

func Hydrate(
	tenantID uuid.UUID,
	id uuid.UUID,
	donorID uuid.UUID,
	childID uuid.UUID,
	projectID uuid.UUID,
	monthlyAmount int64,
	createdAt time.Time,
	updatedAt time.Time,
) Sponsorship {
	return Sponsorship{
		tenantID:      tenantID,
		id:            id,
		donorID:       donorID,
		childID:       childID,
		projectID:     projectID,
		monthlyAmount: monthlyAmount,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (s Sponsorship) TenantID() uuid.UUID  { return s.tenantID }
func (s Sponsorship) ID() uuid.UUID        { return s.id }
func (s Sponsorship) DonorID() uuid.UUID   { return s.donorID }
func (s Sponsorship) ChildID() uuid.UUID   { return s.childID }
func (s Sponsorship) ProjectID() uuid.UUID { return s.projectID }
func (s Sponsorship) MonthlyAmount() int64 { return s.monthlyAmount }
func (s Sponsorship) CreatedAt() time.Time { return s.createdAt }
func (s Sponsorship) UpdatedAt() time.Time { return s.updatedAt }
func (s Sponsorship) IsZero() bool         { return s.id == uuid.Nil }
