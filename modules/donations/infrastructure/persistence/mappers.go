package persistence

import (
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/child"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donor"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/project"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/sponsorship"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/infrastructure/persistence/models"
)

func toDomainDonor(row models.Donor) donor.Donor {
	return donor.Hydrate(
		row.TenantID,
		row.ID,
		row.Name,
		row.Email,
		row.LastUpdatedAt,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainChild(row models.Child) child.Child {
	return child.Hydrate(
		row.TenantID,
		row.ID,
		row.Name,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainProject(row models.Project) project.Project {
	return project.Hydrate(
		row.TenantID,
		row.ID,
		row.Title,
		project.Type(row.ProjectType),
		row.ChildID,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainSponsorship(row models.Sponsorship) sponsorship.Sponsorship {
	return sponsorship.Hydrate(
		row.TenantID,
		row.ID,
		row.DonorID,
		row.ChildID,
		row.ProjectID,
		row.MonthlyAmount,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainDonation(row models.Donation) donation.Donation {
	return donation.Hydrate(
		row.TenantID,
		row.ID,
		donation.NewParams{
			DonorID:                       row.DonorID,
			ProjectID:                     row.ProjectID,
			ChildID:                       row.ChildID,
			Amount:                        row.Amount,
			Currency:                      row.Currency,
			DonatedAt:                     row.DonatedAt,
			PaymentMethod:                 derefString(row.PaymentMethod),
			ExternalChargeID:              derefString(row.ExternalChargeID),
			ExternalSubscriptionID:        derefString(row.ExternalSubscriptionID),
			Status:                        donation.Status(row.Status),
			DuplicateSubscriptionDetected: row.DuplicateSubscriptionDetected,
			NeedsAttentionReason:          derefString(row.NeedsAttentionReason),
		},
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func nullString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
