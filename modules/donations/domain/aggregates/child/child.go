package child

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Child is a sponsorship beneficiary, resolved by exact name.
type Child struct {
	tenantID  uuid.UUID
	id        uuid.UUID
	name      string
	createdAt time.Time
	updatedAt time.Time
}

func New(tenantID uuid.UUID, name string) Child {
	return Child{
		tenantID: tenantID,
		name:     strings.TrimSpace(name),
	}
}

func Hydrate(
	tenantID uuid.UUID,
	id uuid.UUID,
	name string,
	createdAt time.Time,
	updatedAt time.Time,
) Child {
	return Child{
		tenantID:  tenantID,
		id:        id,
		name:      strings.TrimSpace(name),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c Child) TenantID() uuid.UUID  { return c.tenantID }
func (c Child) ID() uuid.UUID        { return c.id }
func (c Child) Name() string         { return c.name }
func (c Child) CreatedAt() time.Time { return c.createdAt }
func (c Child) UpdatedAt() time.Time { return c.updatedAt }
func (c Child) IsZero() bool         { return c.id == uuid.Nil && c.name == "" }
