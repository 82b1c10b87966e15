package cli

import (
	"github.com/spf13/cobra"

	"task-api/internal/config"
	"task-api/internal/repository/sqldb/migrations"
)

func (r *RootCommand) newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply pending database migrations. Running migrate with no subcommand is
the same as migrate up.`,
		Args: cobra.NoArgs,
		RunE: r.runMigrateUp,
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE:  r.runMigrateUp,
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recently applied migration",
		Args:  cobra.NoArgs,
		RunE:  r.runMigrateDown,
	}

	migrateCmd.AddCommand(upCmd, downCmd)
	return migrateCmd
}

func (r *RootCommand) runMigrateUp(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo, err := config.OpenRepository(ctx, r.config)
	if err != nil {
		return r.errorHandler.Handle("run migrations", err)
	}
	defer repo.Close()

	dialect := string(repo.Dialect())
	if err := migrations.RunMigrations(ctx, repo.DB(), dialect); err != nil {
		return r.errorHandler.Handle("run migrations", err)
	}

	versions, err := migrations.AppliedVersions(ctx, repo.DB())
	if err != nil {
		return r.errorHandler.Handle("read migration versions", err)
	}

	current := 0
	if len(versions) > 0 {
		current = versions[len(versions)-1]
	}
	r.logger.Info("migrations applied", "dialect", dialect, "version", current)
	r.printf("database is at version %d\n", current)
	return nil
}

func (r *RootCommand) runMigrateDown(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo, err := config.OpenRepository(ctx, r.config)
	if err != nil {
		return r.errorHandler.Handle("roll back migration", err)
	}
	defer repo.Close()

	version, err := migrations.Rollback(ctx, repo.DB(), string(repo.Dialect()))
	if err != nil {
		return r.errorHandler.Handle("roll back migration", err)
	}

	if version == 0 {
		r.printf("no migrations to roll back\n")
		return nil
	}
	r.logger.Info("migration rolled back", "version", version)
	r.printf("rolled back migration %d\n", version)
	return nil
}
