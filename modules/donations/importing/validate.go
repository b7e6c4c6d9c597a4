package importing

import (
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
)

// Validate performs a parse-only pass over the source: layout
// detection, row parsing and status classification, with no database
// access. Duplicate and skip counts require persisted state and stay
// zero. Operators run this before a real import to see what a file
// would produce.
func Validate(src *Source, defaultCurrency string) (*Result, error) {
	layout, err := DetectLayout(src.Header)
	if err != nil {
		return nil, err
	}

	result := &Result{RowErrors: []RowError{}}
	for idx, rec := range src.Records {
		rowNum := idx + 2

		row, err := ParseRow(layout, rowNum, rec, defaultCurrency)
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Row: rowNum, Reason: rowErrorReason(err)})
			continue
		}

		status, _ := ClassifyStatus(row.RawStatus)
		switch status {
		case donation.StatusSucceeded:
			result.Succeeded++
		case donation.StatusFailed:
			result.Failed++
		case donation.StatusRefunded:
			result.Refunded++
		case donation.StatusCanceled:
			result.Canceled++
		case donation.StatusNeedsAttention:
			result.NeedsAttention++
		}
	}
	return result, nil
}
