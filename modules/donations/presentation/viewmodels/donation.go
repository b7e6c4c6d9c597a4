package viewmodels

// Donation is the serialized review-queue record.
type Donation struct {
	ID                            string `json:"id"`
	DonorName                     string `json:"donor_name"`
	DonorEmail                    string `json:"donor_email"`
	Amount                        int64  `json:"amount"`
	AmountDisplay                 string `json:"amount_display"`
	Currency                      string `json:"currency"`
	DonatedAt                     string `json:"donated_at"`
	PaymentMethod                 string `json:"payment_method,omitempty"`
	ExternalChargeID              string `json:"external_charge_id,omitempty"`
	ExternalSubscriptionID        string `json:"external_subscription_id,omitempty"`
	ChildID                       string `json:"child_id,omitempty"`
	ProjectID                     string `json:"project_id,omitempty"`
	Status                        string `json:"status"`
	DuplicateSubscriptionDetected bool   `json:"duplicate_subscription_detected"`
	NeedsAttentionReason          string `json:"needs_attention_reason,omitempty"`
	CreatedAt                     string `json:"created_at"`
}
