package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"labelprint/internal/infrastructure/storage/postgres"
	"labelprint/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("status", false, "list applied migrations instead of applying")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx, err := commandContext(cmd.Context())
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.Database))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer pool.Close()

	if status, _ := cmd.Flags().GetBool("status"); status {
		rows, err := postgres.MigrationStatuses(ctx, pool)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tAPPLIED AT\tCHECKSUM")
		for _, r := range rows {
			applied := "pending"
			if r.Applied && r.AppliedAt != nil {
				applied = r.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(tw, "%s\t%s\t%.12s\n", r.ID, applied, r.Checksum)
		}
		return tw.Flush()
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info(ctx, "migrations applied")
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
