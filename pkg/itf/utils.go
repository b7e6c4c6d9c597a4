package itf

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/mlongerich/DonationTracker-sub002/migrations"
	"github.com/mlongerich/DonationTracker-sub002/pkg/composables"
	"github.com/mlongerich/DonationTracker-sub002/pkg/configuration"
)

func NewPool(dbOpts string) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	config, err := pgxpool.ParseConfig(dbOpts)
	if err != nil {
		panic(err)
	}
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Minute * 5
	config.MaxConnIdleTime = time.Second * 30

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		panic(fmt.Errorf("failed to create database pool: %w", err))
	}
	return pool
}

// sanitizeDBName derives a valid, unique Postgres database name from a
// test name.
func sanitizeDBName(name string) string {
	lowered := strings.ToLower(name)
	var b strings.Builder
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	sanitized := b.String()
	if len(sanitized) > 40 {
		sum := sha256.Sum256([]byte(name))
		sanitized = fmt.Sprintf("%s_%x", sanitized[:32], sum[:4])
	}
	return "test_" + sanitized
}

// DbOpts returns a connection string pointing at the given database.
func DbOpts(name string) string {
	conf := configuration.Use()
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		conf.Database.Host,
		conf.Database.Port,
		conf.Database.User,
		name,
		conf.Database.Password,
	)
}

// CreateDB drops and recreates the test database, then applies all
// migrations.
func CreateDB(name string) {
	conf := configuration.Use()
	adminOpts := fmt.Sprintf(
		"host=%s port=%s user=%s dbname=postgres password=%s sslmode=disable",
		conf.Database.Host,
		conf.Database.Port,
		conf.Database.User,
		conf.Database.Password,
	)

	db, err := sql.Open("postgres", adminOpts)
	if err != nil {
		panic(err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", name)); err != nil {
		panic(err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", name)); err != nil {
		panic(err)
	}

	target, err := sql.Open("postgres", DbOpts(name))
	if err != nil {
		panic(err)
	}
	defer func() { _ = target.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}
	if err := goose.Up(target, "."); err != nil {
		panic(err)
	}
}

// CreateTestTenant inserts a tenant row for the test run.
func CreateTestTenant(ctx context.Context, pool *pgxpool.Pool) (*composables.Tenant, error) {
	tenant := &composables.Tenant{
		ID:     uuid.New(),
		Name:   "Test Tenant",
		Domain: "test.example.org",
	}
	_, err := pool.Exec(
		ctx,
		"INSERT INTO tenants (id, name, domain) VALUES ($1, $2, $3)",
		tenant.ID, tenant.Name, tenant.Domain,
	)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}
