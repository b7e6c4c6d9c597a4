package importing

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-faster/errors"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/child"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/project"
	"github.com/mlongerich/DonationTracker-sub002/pkg/composables"
)

// beneficiaryPattern captures "for <Capitalized Name>" in free-form
// descriptions. The name is one or more capitalized words; the match
// stops at the first word that is not capitalized.
var beneficiaryPattern = regexp.MustCompile(`\bfor ((?:[A-Z][A-Za-z'-]*)(?: [A-Z][A-Za-z'-]*)*)`)

// ExtractBeneficiary pulls a child name out of a donation description.
// Extraction is pure: the same text always yields the same result.
func ExtractBeneficiary(text string) (string, bool) {
	m := beneficiaryPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false
	}
	return name, true
}

// beneficiaryExtractor resolves a description to a child and that
// child's sponsorship project, creating both on first reference.
type beneficiaryExtractor struct {
	children child.Repository
	projects project.Repository
}

func newBeneficiaryExtractor(children child.Repository, projects project.Repository) *beneficiaryExtractor {
	return &beneficiaryExtractor{children: children, projects: projects}
}

// Resolve returns the child and sponsorship project referenced by the
// description, or zero values when the description names no child.
func (e *beneficiaryExtractor) Resolve(ctx context.Context, description string) (child.Child, project.Project, error) {
	name, ok := ExtractBeneficiary(description)
	if !ok {
		return child.Child{}, project.Project{}, nil
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return child.Child{}, project.Project{}, err
	}

	c, err := e.children.GetByName(ctx, name)
	if errors.Is(err, child.ErrNotFound) {
		c, err = e.children.Create(ctx, child.New(tenantID, name))
	}
	if err != nil {
		return child.Child{}, project.Project{}, errors.Wrap(err, "resolve child")
	}

	p, err := e.projects.GetSponsorshipByChild(ctx, c.ID())
	if errors.Is(err, project.ErrNotFound) {
		p, err = e.projects.Create(ctx, project.NewSponsorship(tenantID, c.Name(), c.ID()))
	}
	if err != nil {
		return child.Child{}, project.Project{}, errors.Wrap(err, "resolve sponsorship project")
	}
	return c, p, nil
}
