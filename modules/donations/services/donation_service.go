package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/importing"
	"github.com/mlongerich/DonationTracker-sub002/pkg/eventbus"
)

type DonationService struct {
	repo     donation.Repository
	importer *importing.Importer
	bus      eventbus.EventBus
}

func NewDonationService(
	repo donation.Repository,
	importer *importing.Importer,
	bus eventbus.EventBus,
) *DonationService {
	return &DonationService{
		repo:     repo,
		importer: importer,
		bus:      bus,
	}
}

func (s *DonationService) GetByID(ctx context.Context, id uuid.UUID) (donation.Donation, error) {
	return s.repo.GetByID(ctx, id)
}

// Import runs the batch reconciliation over the file at path.
func (s *DonationService) Import(ctx context.Context, path string) (*importing.Result, error) {
	src, err := importing.OpenSource(path)
	if err != nil {
		return nil, err
	}
	return s.importer.Run(ctx, src)
}
