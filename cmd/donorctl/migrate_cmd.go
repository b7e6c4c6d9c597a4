package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/mlongerich/DonationTracker-sub002/migrations"
	"github.com/mlongerich/DonationTracker-sub002/pkg/configuration"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(args[0])
		},
	}
	return cmd
}

func runMigrate(direction string) error {
	conf := configuration.Use()
	defer conf.Unload()

	db, err := sql.Open("pgx", conf.Database.Opts)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("open database: %w", err))
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return withCode(exitDB, err)
	}

	switch direction {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	default:
		return withCode(exitUsage, fmt.Errorf("unknown direction %q", direction))
	}
	if err != nil {
		return withCode(exitDBWrite, fmt.Errorf("migrate %s: %w", direction, err))
	}
	return writeJSONLine(map[string]string{"migrate": direction, "result": "ok"})
}
