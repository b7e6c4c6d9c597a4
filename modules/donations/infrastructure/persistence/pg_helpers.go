package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlongerich/DonationTracker-sub002/pkg/composables"
	"github.com/mlongerich/DonationTracker-sub002/pkg/repo"
)

func useTenantTx(ctx context.Context) (repo.Tx, uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("failed to get tenant from context: %w", err)
	}
	return tx, tenantID, nil
}
