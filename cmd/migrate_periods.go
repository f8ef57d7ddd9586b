package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/kpi-portal/internal/calendar/periodmigration"
	"github.com/frahmantamala/kpi-portal/pkg/logger"
)

var (
	migratePeriodsCmd = &cobra.Command{
		Use:   "migrate-periods",
		Short: "Rewrite Gregorian evaluation and feedback periods to Persian ones",
		RunE:  runMigratePeriods,
	}
	periodsDryRun bool
)

func init() {
	migratePeriodsCmd.Flags().BoolVar(&periodsDryRun, "dry-run", false, "report what would change without writing")
}

func runMigratePeriods(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	_, sqlDB, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to open DB: %v", err)
	}
	defer sqlDB.Close()

	report, err := periodmigration.New(sqlDB, logger.L()).Run(ctx, periodsDryRun)
	if err != nil {
		return fmt.Errorf("period migration failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	fmt.Printf("migrated %d rows (dry run: %t)\n", report.Migrated(), report.DryRun)
	return nil
}
