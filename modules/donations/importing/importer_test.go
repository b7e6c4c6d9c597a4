package importing

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/child"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/donation"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/project"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/domain/aggregates/sponsorship"
	"github.com/mlongerich/DonationTracker-sub002/pkg/configuration"
)

type mockChildRepo struct {
	byName map[string]child.Child
}

func newMockChildRepo() *mockChildRepo {
	return &mockChildRepo{byName: map[string]child.Child{}}
}

func (m *mockChildRepo) GetByID(ctx context.Context, id uuid.UUID) (child.Child, error) {
	for _, c := range m.byName {
		if c.ID() == id {
			return c, nil
		}
	}
	return child.Child{}, child.ErrNotFound
}

func (m *mockChildRepo) GetByName(ctx context.Context, name string) (child.Child, error) {
	if c, ok := m.byName[strings.TrimSpace(name)]; ok {
		return c, nil
	}
	return child.Child{}, child.ErrNotFound
}

func (m *mockChildRepo) Create(ctx context.Context, c child.Child) (child.Child, error) {
	created := child.Hydrate(c.TenantID(), uuid.New(), c.Name(), time.Now(), time.Now())
	m.byName[created.Name()] = created
	return created, nil
}

type mockProjectRepo struct {
	byChild map[uuid.UUID]project.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{byChild: map[uuid.UUID]project.Project{}}
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	for _, p := range m.byChild {
		if p.ID() == id {
			return p, nil
		}
	}
	return project.Project{}, project.ErrNotFound
}

func (m *mockProjectRepo) GetSponsorshipByChild(ctx context.Context, childID uuid.UUID) (project.Project, error) {
	if p, ok := m.byChild[childID]; ok {
		return p, nil
	}
	return project.Project{}, project.ErrNotFound
}

func (m *mockProjectRepo) Create(ctx context.Context, p project.Project) (project.Project, error) {
	created := project.Hydrate(
		p.TenantID(), uuid.New(), p.Title(), p.ProjectType(), p.ChildID(),
		time.Now(), time.Now(),
	)
	if created.ChildID() != nil {
		m.byChild[*created.ChildID()] = created
	}
	return created, nil
}

type mockSponsorshipRepo struct {
	links map[string]sponsorship.Sponsorship
}

func newMockSponsorshipRepo() *mockSponsorshipRepo {
	return &mockSponsorshipRepo{links: map[string]sponsorship.Sponsorship{}}
}

func (m *mockSponsorshipRepo) GetByDonorAndChild(ctx context.Context, donorID, childID uuid.UUID) (sponsorship.Sponsorship, error) {
	if s, ok := m.links[donorID.String()+"/"+childID.String()]; ok {
		return s, nil
	}
	return sponsorship.Sponsorship{}, sponsorship.ErrNotFound
}

func (m *mockSponsorshipRepo) Create(ctx context.Context, s sponsorship.Sponsorship) (sponsorship.Sponsorship, error) {
	created := sponsorship.Hydrate(
		s.TenantID(), uuid.New(), s.DonorID(), s.ChildID(), s.ProjectID(),
		s.MonthlyAmount(), time.Now(), time.Now(),
	)
	m.links[s.DonorID().String()+"/"+s.ChildID().String()] = created
	return created, nil
}

type mockDonationRepo struct {
	donations   []donation.Donation
	keys        map[string]bool
	subsByChild map[uuid.UUID][]string
	subsCalls   int
	statuses    map[uuid.UUID]donation.Status
}

func newMockDonationRepo() *mockDonationRepo {
	return &mockDonationRepo{
		keys:        map[string]bool{},
		subsByChild: map[uuid.UUID][]string{},
		statuses:    map[uuid.UUID]donation.Status{},
	}
}

func (m *mockDonationRepo) GetByID(ctx context.Context, id uuid.UUID) (donation.Donation, error) {
	for _, d := range m.donations {
		if d.ID() == id {
			return d, nil
		}
	}
	return donation.Donation{}, donation.ErrNotFound
}

// Create enforces the same idempotency keys as the partial unique
// indexes in the schema.
func (m *mockDonationRepo) Create(ctx context.Context, d donation.Donation) (donation.Donation, error) {
	var keys []string
	if d.ExternalSubscriptionID() != "" && d.ChildID() != nil {
		keys = append(keys, "sub/"+d.ExternalSubscriptionID()+"/"+d.ChildID().String())
	}
	if d.ExternalChargeID() != "" {
		keys = append(keys, "charge/"+d.DonorID().String()+"/"+d.ExternalChargeID())
	}
	for _, key := range keys {
		if m.keys[key] {
			return donation.Donation{}, donation.ErrDuplicate
		}
	}
	for _, key := range keys {
		m.keys[key] = true
	}

	created := donation.Hydrate(d.TenantID(), uuid.New(), donation.NewParams{
		DonorID:                       d.DonorID(),
		ProjectID:                     d.ProjectID(),
		ChildID:                       d.ChildID(),
		Amount:                        d.Amount(),
		Currency:                      d.Currency(),
		DonatedAt:                     d.DonatedAt(),
		PaymentMethod:                 d.PaymentMethod(),
		ExternalChargeID:              d.ExternalChargeID(),
		ExternalSubscriptionID:        d.ExternalSubscriptionID(),
		Status:                        d.Status(),
		DuplicateSubscriptionDetected: d.DuplicateSubscriptionDetected(),
		NeedsAttentionReason:          d.NeedsAttentionReason(),
	}, time.Now(), time.Now())
	m.donations = append(m.donations, created)
	if created.ExternalSubscriptionID() != "" && created.ChildID() != nil {
		m.subsByChild[*created.ChildID()] = append(m.subsByChild[*created.ChildID()], created.ExternalSubscriptionID())
	}
	return created, nil
}

func (m *mockDonationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status donation.Status) error {
	m.statuses[id] = status
	return nil
}

func (m *mockDonationRepo) SubscriptionIDsByChild(ctx context.Context, childID uuid.UUID) ([]string, error) {
	m.subsCalls++
	seen := map[string]bool{}
	var out []string
	for _, id := range m.subsByChild[childID] {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *mockDonationRepo) FindReview(ctx context.Context, params *donation.ReviewFindParams) ([]donation.ReviewEntry, int64, error) {
	return nil, 0, nil
}

type importFixture struct {
	donors    *mockDonorRepo
	children  *mockChildRepo
	projects  *mockProjectRepo
	links     *mockSponsorshipRepo
	donations *mockDonationRepo
	importer  *Importer
}

func newImportFixture() *importFixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &importFixture{
		donors:    newMockDonorRepo(),
		children:  newMockChildRepo(),
		projects:  newMockProjectRepo(),
		links:     newMockSponsorshipRepo(),
		donations: newMockDonationRepo(),
	}
	f.importer = NewImporter(
		f.donors, f.children, f.projects, f.links, f.donations,
		configuration.ImportOptions{
			PlaceholderEmailDomain: "donors.example.org",
			DefaultCurrency:        "USD",
		},
		log,
		nil,
	)
	f.importer.inTx = func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	}
	return f
}

var importHeader = []string{
	"amount", "date", "status", "email", "billing_email", "name",
	"description", "subscription_id", "charge_id",
}

func TestImporter_EndToEnd(t *testing.T) {
	f := newImportFixture()
	src := &Source{
		Header: importHeader,
		Records: [][]string{
			{"100.00", "2024-03-01", "succeeded", "", "j@x.com", "J Smith", "for Maria", "sub_1", "ch_1"},
		},
	}

	result, err := f.importer.Run(tenantCtx(t), src)
	require.NoError(t, err)
	require.Equal(t, 1, result.Succeeded)
	require.Zero(t, result.NeedsAttention)
	require.Zero(t, result.DuplicateSubscriptions)
	require.Empty(t, result.RowErrors)

	require.Len(t, f.donors.created, 1)
	require.Equal(t, "j@x.com", f.donors.created[0].Email())

	maria, err := f.children.GetByName(context.Background(), "Maria")
	require.NoError(t, err)

	p, err := f.projects.GetSponsorshipByChild(context.Background(), maria.ID())
	require.NoError(t, err)
	require.Equal(t, "Maria Sponsorship", p.Title())
	require.Equal(t, project.TypeSponsorship, p.ProjectType())

	require.Len(t, f.donations.donations, 1)
	d := f.donations.donations[0]
	require.Equal(t, donation.StatusSucceeded, d.Status())
	require.False(t, d.DuplicateSubscriptionDetected())
	require.Equal(t, int64(10000), d.Amount())

	link, err := f.links.GetByDonorAndChild(context.Background(), d.DonorID(), maria.ID())
	require.NoError(t, err)
	require.Equal(t, int64(10000), link.MonthlyAmount())
}

func TestImporter_PartialFailureIsolation(t *testing.T) {
	f := newImportFixture()
	records := make([][]string, 0, 5)
	records = append(records,
		[]string{"10.00", "2024-01-01", "succeeded", "a@x.com", "", "A", "", "", "ch_a"},
		[]string{"20.00", "2024-01-02", "succeeded", "b@x.com", "", "B", "", "", "ch_b"},
		[]string{"", "2024-01-03", "succeeded", "c@x.com", "", "C", "", "", "ch_c"},
		[]string{"40.00", "2024-01-04", "failed", "d@x.com", "", "D", "", "", "ch_d"},
		[]string{"50.00", "2024-01-05", "refunded", "e@x.com", "", "E", "", "", "ch_e"},
	)
	src := &Source{Header: importHeader, Records: records}

	result, err := f.importer.Run(tenantCtx(t), src)
	require.NoError(t, err)
	require.Equal(t, 2, result.Succeeded)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, 1, result.Refunded)
	require.Len(t, result.RowErrors, 1)
	// Header is line 1, so the bad third record is row 4.
	require.Equal(t, 4, result.RowErrors[0].Row)
	require.Contains(t, result.RowErrors[0].Reason, "amount")
	require.Len(t, f.donations.donations, 4)
}

func TestImporter_Idempotency(t *testing.T) {
	f := newImportFixture()
	src := &Source{
		Header: importHeader,
		Records: [][]string{
			{"100.00", "2024-03-01", "succeeded", "j@x.com", "", "J Smith", "for Maria", "sub_1", "ch_1"},
			{"25.00", "2024-03-02", "succeeded", "k@x.com", "", "K Jones", "", "", "ch_2"},
		},
	}

	first, err := f.importer.Run(tenantCtx(t), src)
	require.NoError(t, err)
	require.Equal(t, 2, first.Succeeded)

	second, err := f.importer.Run(tenantCtx(t), src)
	require.NoError(t, err)
	require.Zero(t, second.Succeeded)
	require.Equal(t, 2, second.Skipped)
	require.Empty(t, second.RowErrors)
	require.Len(t, f.donations.donations, 2)
	require.Len(t, f.donors.created, 2)
}

func TestImporter_Idempotency_RecurringRowWithoutBeneficiary(t *testing.T) {
	f := newImportFixture()
	src := &Source{
		Header: importHeader,
		Records: [][]string{
			{"100.00", "2024-03-01", "succeeded", "j@x.com", "", "J Smith", "General monthly gift", "sub_1", "ch_1"},
		},
	}

	first, err := f.importer.Run(tenantCtx(t), src)
	require.NoError(t, err)
	require.Equal(t, 1, first.Succeeded)

	// No child resolved, so the subscription+child key is absent; the
	// charge id alone must keep the re-run from inserting a second row.
	second, err := f.importer.Run(tenantCtx(t), src)
	require.NoError(t, err)
	require.Zero(t, second.Succeeded)
	require.Equal(t, 1, second.Skipped)
	require.Len(t, f.donations.donations, 1)
}

func TestImporter_DuplicateSubscriptionDetection(t *testing.T) {
	f := newImportFixture()
	src := &Source{
		Header: importHeader,
		Records: [][]string{
			{"50.00", "2024-01-01", "succeeded", "a@x.com", "", "A", "for Maria", "sub_A", "ch_1"},
			{"50.00", "2024-02-01", "succeeded", "b@x.com", "", "B", "for Maria", "sub_B", "ch_2"},
		},
	}

	result, err := f.importer.Run(tenantCtx(t), src)
	require.NoError(t, err)
	require.Equal(t, 1, result.Succeeded)
	require.Equal(t, 1, result.NeedsAttention)
	require.Equal(t, 1, result.DuplicateSubscriptions)

	first := f.donations.donations[0]
	require.Equal(t, donation.StatusSucceeded, first.Status())
	require.False(t, first.DuplicateSubscriptionDetected())

	second := f.donations.donations[1]
	require.Equal(t, donation.StatusNeedsAttention, second.Status())
	require.True(t, second.DuplicateSubscriptionDetected())
	require.Contains(t, second.NeedsAttentionReason(), "sub_A")

	// The flagged link is not recorded as a sponsorship.
	_, err = f.links.GetByDonorAndChild(context.Background(), second.DonorID(), *second.ChildID())
	require.ErrorIs(t, err, sponsorship.ErrNotFound)
}

func TestImporter_UnknownStatusRoutedToReview(t *testing.T) {
	f := newImportFixture()
	src := &Source{
		Header: importHeader,
		Records: [][]string{
			{"10.00", "2024-01-01", "disputed", "a@x.com", "", "A", "", "", "ch_1"},
		},
	}

	result, err := f.importer.Run(tenantCtx(t), src)
	require.NoError(t, err)
	require.Equal(t, 1, result.NeedsAttention)
	require.Empty(t, result.RowErrors)
	require.Contains(t, f.donations.donations[0].NeedsAttentionReason(), "disputed")
}

func TestImporter_CancellationStopsFurtherRows(t *testing.T) {
	f := newImportFixture()
	src := &Source{
		Header: importHeader,
		Records: [][]string{
			{"10.00", "2024-01-01", "succeeded", "a@x.com", "", "A", "", "", "ch_1"},
		},
	}

	ctx, cancel := context.WithCancel(tenantCtx(t))
	cancel()

	result, err := f.importer.Run(ctx, src)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, result.Processed())
	require.Empty(t, f.donations.donations)
}

func TestImporter_UnusableHeaderAbortsRun(t *testing.T) {
	f := newImportFixture()
	src := &Source{Header: []string{"foo", "bar"}, Records: [][]string{{"1", "2"}}}

	_, err := f.importer.Run(tenantCtx(t), src)
	require.Error(t, err)
}
