package importing

import "fmt"

// MalformedRowError marks a row missing mandatory fields (amount,
// date) or carrying values that cannot be parsed. The row is skipped,
// counted and reported; it never aborts the batch.
type MalformedRowError struct {
	Row    int
	Raw    []string
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// IdentityResolutionError marks a donor that could not be persisted
// after all email fallbacks were exhausted. Row-local, never aborts
// the batch.
type IdentityResolutionError struct {
	Row int
	Err error
}

func (e *IdentityResolutionError) Error() string {
	return fmt.Sprintf("row %d: donor resolution failed: %v", e.Row, e.Err)
}

func (e *IdentityResolutionError) Unwrap() error { return e.Err }
