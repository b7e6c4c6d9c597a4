package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/importing"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/infrastructure/persistence"
	"github.com/mlongerich/DonationTracker-sub002/pkg/composables"
	"github.com/mlongerich/DonationTracker-sub002/pkg/configuration"
	"github.com/mlongerich/DonationTracker-sub002/pkg/eventbus"
)

type importCmdOptions struct {
	tenantID uuid.UUID
	file     string
	dryRun   bool
}

func newImportCmd() *cobra.Command {
	var opts importCmdOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a payment processor export (CSV or XLSX)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Path to the export file (required)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Parse and classify without writing anything")

	var tenant string
	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant UUID (required)")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("tenant")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(strings.TrimSpace(tenant))
		if err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --tenant: %w", err))
		}
		opts.tenantID = id
		return nil
	}

	return cmd
}

func runImport(ctx context.Context, opts importCmdOptions) error {
	if _, err := os.Stat(opts.file); err != nil {
		return withCode(exitValidation, fmt.Errorf("input file: %w", err))
	}

	conf := configuration.Use()
	defer conf.Unload()

	src, err := importing.OpenSource(opts.file)
	if err != nil {
		return withCode(exitValidation, fmt.Errorf("read %s: %w", opts.file, err))
	}

	if opts.dryRun {
		result, err := importing.Validate(src, conf.Import.DefaultCurrency)
		if err != nil {
			return withCode(exitValidation, fmt.Errorf("validate: %w", err))
		}
		return writeJSONLine(result)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(connectCtx, conf.Database.Opts)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("connect: %w", err))
	}
	defer pool.Close()

	ctx = composables.WithPool(ctx, pool)
	ctx = composables.WithTenantID(ctx, opts.tenantID)

	importer := importing.NewImporter(
		persistence.NewDonorRepository(),
		persistence.NewChildRepository(),
		persistence.NewProjectRepository(),
		persistence.NewSponsorshipRepository(),
		persistence.NewDonationRepository(),
		conf.Import,
		conf.Logger(),
		eventbus.NewEventPublisher(conf.Logger()),
	)

	// Run fails only on an unusable header or cancellation; row-level
	// failures land in the summary.
	result, err := importer.Run(ctx, src)
	if err != nil {
		return withCode(exitValidation, fmt.Errorf("import: %w", err))
	}

	// Row-level failures are part of the summary, not a process
	// failure: exit 0 so scripted re-runs keep going.
	return writeJSONLine(result)
}
