package importing

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/go-faster/errors"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donor"
	"github.com/mlongerich/DonationTracker-sub002/pkg/composables"
)

// identityResolver finds or creates the donor a row belongs to. Rows
// without any email identify the donor by a deterministic synthetic
// address derived from the name, so re-imports land on the same
// record.
type identityResolver struct {
	donors            donor.Repository
	placeholderDomain string
}

func newIdentityResolver(donors donor.Repository, placeholderDomain string) *identityResolver {
	return &identityResolver{
		donors:            donors,
		placeholderDomain: placeholderDomain,
	}
}

// Resolve returns the donor for the row, creating or updating one as
// needed. Name updates are watermark-gated: an older row never
// overwrites a name written by a newer one.
func (r *identityResolver) Resolve(ctx context.Context, row SourceRow) (donor.Donor, error) {
	email := r.resolveEmail(row)

	existing, err := r.donors.GetByEmail(ctx, email)
	if err == nil {
		merged, changed := mergeDonor(existing, row.Name, row.Date)
		if !changed {
			return existing, nil
		}
		if err := r.donors.Update(ctx, merged); err != nil {
			return donor.Donor{}, &IdentityResolutionError{Row: row.Row, Err: err}
		}
		return merged, nil
	}
	if !errors.Is(err, donor.ErrNotFound) {
		return donor.Donor{}, &IdentityResolutionError{Row: row.Row, Err: err}
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return donor.Donor{}, &IdentityResolutionError{Row: row.Row, Err: err}
	}
	name := strings.TrimSpace(row.Name)
	if name == "" {
		name = "Anonymous"
	}
	created, err := r.donors.Create(ctx, donor.New(tenantID, name, email, row.Date))
	if err != nil {
		return donor.Donor{}, &IdentityResolutionError{Row: row.Row, Err: err}
	}
	return created, nil
}

// resolveEmail applies the fallback chain: primary email, then billing
// email, then a synthetic address built from the donor's name.
func (r *identityResolver) resolveEmail(row SourceRow) string {
	if e := strings.TrimSpace(row.Email); e != "" {
		return strings.ToLower(e)
	}
	if e := strings.TrimSpace(row.BillingEmail); e != "" {
		return strings.ToLower(e)
	}
	return r.syntheticEmail(row.Name)
}

func (r *identityResolver) syntheticEmail(name string) string {
	local := collapseName(name)
	if local == "" {
		local = "anonymous"
	}
	return local + "@" + r.placeholderDomain
}

// mergeDonor applies row data onto an existing donor. The name is
// replaced only when the row is strictly newer than the donor's last
// update and carries a non-blank name.
func mergeDonor(existing donor.Donor, name string, ts time.Time) (donor.Donor, bool) {
	name = strings.TrimSpace(name)
	if name == "" || !ts.After(existing.LastUpdatedAt()) {
		return existing, false
	}
	if name == existing.Name() {
		return existing.WithLastUpdatedAt(ts), true
	}
	return existing.WithName(name).WithLastUpdatedAt(ts), true
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// collapseName folds diacritics and strips everything but letters and
// digits, producing a stable lowercase local-part for synthetic
// emails.
func collapseName(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
