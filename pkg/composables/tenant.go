package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mlongerich/DonationTracker-sub002/pkg/constants"
)

var ErrNoTenantID = errors.New("no tenant id found in context")

// Tenant represents a hosted chapter of the tracker.
type Tenant struct {
	ID     uuid.UUID
	Name   string
	Domain string
}

func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, tenantID)
}

func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	v := ctx.Value(constants.TenantIDKey)
	if v == nil {
		return uuid.Nil, ErrNoTenantID
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNoTenantID
	}
	return id, nil
}
