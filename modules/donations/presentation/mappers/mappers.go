package mappers

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/presentation/viewmodels"
)

func DonationToViewModel(d donation.Donation, donorName, donorEmail string) *viewmodels.Donation {
	return &viewmodels.Donation{
		ID:                            d.ID().String(),
		DonorName:                     donorName,
		DonorEmail:                    donorEmail,
		Amount:                        d.Amount(),
		AmountDisplay:                 money.New(d.Amount(), d.Currency()).Display(),
		Currency:                      d.Currency(),
		DonatedAt:                     d.DonatedAt().Format(time.RFC3339),
		PaymentMethod:                 d.PaymentMethod(),
		ExternalChargeID:              d.ExternalChargeID(),
		ExternalSubscriptionID:        d.ExternalSubscriptionID(),
		ChildID:                       uuidPtrString(d.ChildID()),
		ProjectID:                     uuidPtrString(d.ProjectID()),
		Status:                        string(d.Status()),
		DuplicateSubscriptionDetected: d.DuplicateSubscriptionDetected(),
		NeedsAttentionReason:          d.NeedsAttentionReason(),
		CreatedAt:                     d.CreatedAt().Format(time.RFC3339),
	}
}

func ReviewEntryToViewModel(e donation.ReviewEntry) *viewmodels.Donation {
	return DonationToViewModel(e.Donation, e.DonorName, e.DonorEmail)
}

func uuidPtrString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
