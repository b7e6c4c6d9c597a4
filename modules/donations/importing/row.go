package importing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical column names resolved by layout detection. Exact header
// names are processor-specific; presence is format-detected against
// the alias table below.
const (
	colAmount         = "amount"
	colDate           = "date"
	colStatus         = "status"
	colEmail          = "email"
	colBillingEmail   = "billing_email"
	colName           = "name"
	colDescription    = "description"
	colSubscriptionID = "subscription_id"
	colChargeID       = "charge_id"
	colPaymentMethod  = "payment_method"
	colCurrency       = "currency"
)

var columnAliases = map[string][]string{
	colAmount:         {"amount", "gross", "amount_paid", "total"},
	colDate:           {"date", "created", "created_at", "transaction_date", "created (utc)"},
	colStatus:         {"status", "payment_status"},
	colEmail:          {"email", "customer_email", "primary_email"},
	colBillingEmail:   {"billing_email", "card_address_email", "billing_contact_email", "receipt_email"},
	colName:           {"name", "billing_name", "card_name", "customer_name", "customer_description"},
	colDescription:    {"description", "memo", "note", "statement_descriptor"},
	colSubscriptionID: {"subscription_id", "subscription", "recurring_id", "plan_id"},
	colChargeID:       {"charge_id", "id", "transaction_id", "payment_id"},
	colPaymentMethod:  {"payment_method", "source_type", "payment_source_type", "type"},
	colCurrency:       {"currency", "converted currency"},
}

// Layout maps canonical columns to indices in a detected header.
type Layout struct {
	index map[string]int
}

// DetectLayout resolves the processor's header against known aliases.
// Amount and date are mandatory; everything else is optional.
func DetectLayout(header []string) (*Layout, error) {
	normalized := make(map[string]int, len(header))
	for i, h := range header {
		normalized[strings.ToLower(strings.TrimSpace(h))] = i
	}

	index := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := normalized[alias]; ok {
				index[canonical] = i
				break
			}
		}
	}

	if _, ok := index[colAmount]; !ok {
		return nil, fmt.Errorf("no amount column found in header: %s", strings.Join(header, ", "))
	}
	if _, ok := index[colDate]; !ok {
		return nil, fmt.Errorf("no date column found in header: %s", strings.Join(header, ", "))
	}
	return &Layout{index: index}, nil
}

func (l *Layout) get(rec []string, canonical string) string {
	i, ok := l.index[canonical]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// SourceRow is the normalized intermediate record produced by the row
// parser.
type SourceRow struct {
	Row            int
	Amount         int64 // minor currency units
	Currency       string
	Date           time.Time
	RawStatus      string
	Name           string
	Email          string
	BillingEmail   string
	Description    string
	SubscriptionID string
	ChargeID       string
	PaymentMethod  string
}

// ParseRow normalizes one raw record. rowNum is the 1-based position
// in the file including the header line, matching what operators see
// in their spreadsheet tooling.
func ParseRow(layout *Layout, rowNum int, rec []string, defaultCurrency string) (SourceRow, error) {
	malformed := func(format string, args ...any) error {
		return &MalformedRowError{Row: rowNum, Raw: rec, Reason: fmt.Sprintf(format, args...)}
	}

	rawAmount := layout.get(rec, colAmount)
	if rawAmount == "" {
		return SourceRow{}, malformed("amount is required")
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return SourceRow{}, malformed("amount: %v", err)
	}
	if amount <= 0 {
		return SourceRow{}, malformed("amount must be positive, got %s", rawAmount)
	}

	rawDate := layout.get(rec, colDate)
	if rawDate == "" {
		return SourceRow{}, malformed("date is required")
	}
	date, err := parseTimeField(rawDate)
	if err != nil {
		return SourceRow{}, malformed("date: %v", err)
	}

	currency := strings.ToUpper(layout.get(rec, colCurrency))
	if currency == "" {
		currency = defaultCurrency
	}

	return SourceRow{
		Row:            rowNum,
		Amount:         amount,
		Currency:       currency,
		Date:           date,
		RawStatus:      layout.get(rec, colStatus),
		Name:           layout.get(rec, colName),
		Email:          layout.get(rec, colEmail),
		BillingEmail:   layout.get(rec, colBillingEmail),
		Description:    layout.get(rec, colDescription),
		SubscriptionID: layout.get(rec, colSubscriptionID),
		ChargeID:       layout.get(rec, colChargeID),
		PaymentMethod:  layout.get(rec, colPaymentMethod),
	}, nil
}

// parseAmount converts a currency string ("100.00", "$1,250.50") to
// integer minor units.
func parseAmount(v string) (int64, error) {
	cleaned := strings.ReplaceAll(v, ",", "")
	cleaned = strings.TrimSpace(strings.TrimLeft(cleaned, "$€£ "))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", v)
	}
	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount has sub-cent precision: %s", v)
	}
	return minor.IntPart(), nil
}

func parseTimeField(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("missing time value")
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"01/02/2006 15:04:05",
		"01/02/2006",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time: %s", v)
}
