package donor

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Donor is an identity record keyed by case-insensitive email. The
// lastUpdatedAt watermark decides whether incoming import data may
// overwrite stored fields.
type Donor struct {
	tenantID      uuid.UUID
	id            uuid.UUID
	name          string
	email         string
	lastUpdatedAt time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func New(tenantID uuid.UUID, name, email string, lastUpdatedAt time.Time) Donor {
	return Donor{
		tenantID:      tenantID,
		name:          strings.TrimSpace(name),
		email:         normalizeEmail(email),
		lastUpdatedAt: lastUpdatedAt,
	}
}

func Hydrate(
	tenantID uuid.UUID,
	id uuid.UUID,
	name string,
	email string,
	lastUpdatedAt time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) Donor {
	return Donor{
		tenantID:      tenantID,
		id:            id,
		name:          strings.TrimSpace(name),
		email:         normalizeEmail(email),
		lastUpdatedAt: lastUpdatedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (d Donor) TenantID() uuid.UUID       { return d.tenantID }
func (d Donor) ID() uuid.UUID             { return d.id }
func (d Donor) Name() string              { return d.name }
func (d Donor) Email() string             { return d.email }
func (d Donor) LastUpdatedAt() time.Time  { return d.lastUpdatedAt }
func (d Donor) CreatedAt() time.Time      { return d.createdAt }
func (d Donor) UpdatedAt() time.Time      { return d.updatedAt }
func (d Donor) IsZero() bool              { return d.id == uuid.Nil && d.email == "" }

func (d Donor) WithName(name string) Donor {
	d.name = strings.TrimSpace(name)
	return d
}

func (d Donor) WithLastUpdatedAt(t time.Time) Donor {
	d.lastUpdatedAt = t
	return d
}

func normalizeEmail(v string) string { return strings.ToLower(strings.TrimSpace(v)) }
