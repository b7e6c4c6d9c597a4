package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeGeneral     Type = "general"
	TypeSponsorship Type = "sponsorship"
)

// Project is a fundraising bucket. A sponsorship-type project is
// created once per child, the first time that child is referenced.
type Project struct {
	tenantID    uuid.UUID
	id          uuid.UUID
	title       string
	projectType Type
	childID     *uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func New(tenantID uuid.UUID, title string, projectType Type, childID *uuid.UUID) Project {
	return Project{
		tenantID:    tenantID,
		title:       strings.TrimSpace(title),
		projectType: projectType,
		childID:     childID,
	}
}

// NewSponsorship builds the per-child sponsorship project with its
// derived title.
func NewSponsorship(tenantID uuid.UUID, childName string, childID uuid.UUID) Project {
	id := childID
	return Project{
		tenantID:    tenantID,
		title:       strings.TrimSpace(childName) + " Sponsorship",
		projectType: TypeSponsorship,
		childID:     &id,
	}
}

func Hydrate(
	tenantID uuid.UUID,
	id uuid.UUID,
	title string,
	projectType Type,
	childID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Project {
	return Project{
		tenantID:    tenantID,
		id:          id,
		title:       strings.TrimSpace(title),
		projectType: projectType,
		childID:     childID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p Project) TenantID() uuid.UUID  { return p.tenantID }
func (p Project) ID() uuid.UUID        { return p.id }
func (p Project) Title() string        { return p.title }
func (p Project) ProjectType() Type    { return p.projectType }
func (p Project) ChildID() *uuid.UUID  { return p.childID }
func (p Project) CreatedAt() time.Time { return p.createdAt }
func (p Project) UpdatedAt() time.Time { return p.updatedAt }
func (p Project) IsZero() bool         { return p.id == uuid.Nil && p.title == "" }
