package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/domain/analytics"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

const defaultSchema = "public"

func main() {
	// Money goes out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clinicdesk",
		Short:        "Clinic dashboard API server",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(analyticsCmd())
	return root
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// loadApp loads config, opens the store and wires the services. Logs go to
// logOut. The returned cleanup closes the store.
func loadApp(ctx context.Context, logOut io.Writer) (*app, *config.Config, zerolog.Logger, func(), error) {
	nop := zerolog.Nop()
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nop, nil, err
	}
	logger := newLogger(cfg, logOut)

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, logger, nil, err
	}
	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, logger, nil, err
	}
	a, err := newApp(s, cfg.StoreDriver, cfg, clock(loc))
	if err != nil {
		s.Close()
		return nil, nil, logger, nil, err
	}
	cleanup := func() {
		if err := s.Close(); err != nil {
			logger.Error().Err(err).Msg("close store")
		}
	}
	return a, cfg, logger, cleanup, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	ctx := context.Background()
	a, cfg, logger, cleanup, err := loadApp(ctx, os.Stdout)
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return err
	}
	defer cleanup()

	if cfg.SeedSampleData {
		res, err := a.seed(ctx)
		if err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
		logger.Info().Int("doctors", res.Doctors).Int("tasks", res.Tasks).Msg("sample data seeded")
	}

	e := a.newServer(cfg, logger)

	errc := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("store", cfg.StoreDriver).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// migrationSource picks the embedded migrations unless a directory is given.
func migrationSource(dir string) fs.FS {
	if dir == "" {
		return db.EmbeddedMigrations()
	}
	return os.DirFS(dir)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run postgres migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Running migrations on schema: %s\n", schema)
			count, err := db.NewMigrator(pool, migrationSource(dir)).Up(ctx, schema)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintf(out, "Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("schema", defaultSchema, "Target schema for migrations")
	upCmd.Flags().String("dir", "", "Migrations directory (embedded migrations when empty)")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, migrationSource(dir)).Status(ctx, schema)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			printStatus(cmd.OutOrStdout(), schema, statuses)
			return nil
		},
	}
	statusCmd.Flags().String("schema", defaultSchema, "Target schema for migrations")
	statusCmd.Flags().String("dir", "", "Migrations directory (embedded migrations when empty)")
	cmd.AddCommand(statusCmd)

	return cmd
}

func printStatus(out io.Writer, schema string, statuses []db.MigrationStatus) {
	fmt.Fprintf(out, "Migration status for schema: %s\n", schema)
	fmt.Fprintf(out, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(out, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status := "pending"
		appliedAt := ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(out, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample doctors and tasks into empty collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, _, _, cleanup, err := loadApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.seed(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d doctor(s) and %d task(s).\n", res.Doctors, res.Tasks)
			return nil
		},
	}
}

func analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Print the dashboard summary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, _ := cmd.Flags().GetString("as-of")

			ctx := context.Background()
			a, _, _, cleanup, err := loadApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			return printSummary(ctx, cmd.OutOrStdout(), a.analytics, asOf)
		},
	}
	cmd.Flags().String("as-of", "", "Reference day (YYYY-MM-DD); defaults to now")
	return cmd
}

func printSummary(ctx context.Context, out io.Writer, svc *analytics.Service, asOf string) error {
	var (
		summary *analytics.Summary
		err     error
	)
	if asOf == "" {
		summary, err = svc.Current(ctx)
	} else {
		var ref time.Time
		if ref, err = analytics.EndOfDay(asOf, svc.Location()); err != nil {
			return err
		}
		summary, err = svc.AsOf(ctx, ref)
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
