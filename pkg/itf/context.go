package itf

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlongerich/DonationTracker-sub002/pkg/composables"
)

// TestEnvironment bundles the per-test database, tenant and a context
// wired with both.
type TestEnvironment struct {
	Ctx    context.Context
	Pool   *pgxpool.Pool
	Tenant *composables.Tenant
}

// TestContext is a fluent builder for integration test environments.
type TestContext struct {
	ctx    context.Context
	dbName string
}

func NewTestContext() *TestContext {
	return &TestContext{ctx: context.Background()}
}

// WithDBName overrides the database name derived from the test name.
func (tc *TestContext) WithDBName(tb testing.TB, name string) *TestContext {
	tb.Helper()
	if tc.dbName == "" {
		tc.dbName = name
	}
	return tc
}

// Build creates a fresh migrated database, a tenant, and a context
// carrying the pool and tenant id. Cleanup closes the pool.
func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()

	if tc.dbName == "" {
		tc.dbName = sanitizeDBName(tb.Name())
	}

	CreateDB(tc.dbName)
	pool := NewPool(DbOpts(tc.dbName))
	tb.Cleanup(pool.Close)

	tenant, err := CreateTestTenant(tc.ctx, pool)
	if err != nil {
		tb.Fatal(err)
	}

	ctx := composables.WithPool(tc.ctx, pool)
	ctx = composables.WithTenantID(ctx, tenant.ID)

	return &TestEnvironment{
		Ctx:    ctx,
		Pool:   pool,
		Tenant: tenant,
	}
}
