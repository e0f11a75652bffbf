package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"picktracker/cmd"
	"picktracker/internal/db/migrations"
	"picktracker/internal/domain"
	"picktracker/internal/logger"
	l3_service "picktracker/internal/service/l3"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// withDependencies builds the service graph for one command and closes
// it afterwards
func withDependencies(fn func(ctx context.Context, deps *cmd.Dependencies) error) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, args []string) error {
		deps, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(deps)

		ctx := logger.WithLogger(c.Context(), logger.New().With("command", c.Name()))
		return fn(ctx, deps)
	}
}

func printJson(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "picktracker",
		Short:        "Pick performance and benchmark series engine",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newRecalcCmd(),
		newMigrateCmd(),
		newImportPositionsCmd(),
		newCacheCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the read api",
		RunE: withDependencies(func(ctx context.Context, deps *cmd.Dependencies) error {
			if port == 0 {
				port = deps.Config.ApiPort
			}
			return deps.ApiHandler.StartApi(port)
		}),
	}
	c.Flags().IntVar(&port, "port", 0, "port to listen on (defaults to API_PORT)")
	return c
}

func newRecalcCmd() *cobra.Command {
	var force, checkOnly bool
	c := &cobra.Command{
		Use:   "recalc",
		Short: "Recalculate every view when the last pass is a week old",
		RunE: withDependencies(func(ctx context.Context, deps *cmd.Dependencies) error {
			log := logger.FromContext(ctx)
			svc := deps.RecalculationService

			due, lastCompleted, err := svc.IsDue(ctx)
			if err != nil {
				return err
			}
			if checkOnly {
				return printJson(os.Stdout, map[string]interface{}{
					"due":             due,
					"lastCompletedAt": lastCompleted,
				})
			}
			if !due && !force {
				log.Infof("recalculation not due, last completed at %v", lastCompleted)
				return nil
			}

			trigger := l3_service.RecalculationTrigger_Weekly
			if force {
				trigger = l3_service.RecalculationTrigger_Manual
			}
			result, err := svc.Run(ctx, trigger)
			if errors.Is(err, domain.ErrAlreadyRunning) {
				log.Warn("another recalculation is running")
				return nil
			}
			if err != nil {
				return err
			}
			return printJson(os.Stdout, result)
		}),
	}
	c.Flags().BoolVar(&force, "force", false, "recalculate even when the cache is fresh")
	c.Flags().BoolVar(&checkOnly, "check-only", false, "report whether a recalculation is due and exit")
	return c
}

func newMigrateCmd() *cobra.Command {
	var status bool
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: withDependencies(func(ctx context.Context, deps *cmd.Dependencies) error {
			if status {
				return migrations.Status(deps.Db)
			}
			return migrations.Up(deps.Db)
		}),
	}
	c.Flags().BoolVar(&status, "status", false, "print migration status instead of applying")
	return c
}

func newImportPositionsCmd() *cobra.Command {
	var positionsPath, votesPath string
	c := &cobra.Command{
		Use:   "import-positions",
		Short: "Load positions, analysts, purchases and votes from csv",
		RunE: withDependencies(func(ctx context.Context, deps *cmd.Dependencies) error {
			positions, err := os.Open(positionsPath)
			if err != nil {
				return fmt.Errorf("failed to open positions csv: %w", err)
			}
			defer positions.Close()

			var votes io.Reader
			if votesPath != "" {
				f, err := os.Open(votesPath)
				if err != nil {
					return fmt.Errorf("failed to open votes csv: %w", err)
				}
				defer f.Close()
				votes = f
			}

			result, err := deps.PositionImportService.Import(ctx, positions, votes)
			if err != nil {
				return err
			}
			return printJson(os.Stdout, result)
		}),
	}
	c.Flags().StringVar(&positionsPath, "positions", "", "positions csv")
	c.Flags().StringVar(&votesPath, "votes", "", "votes csv")
	c.MarkFlagRequired("positions")
	return c
}

func newCacheCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the view cache",
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show age and freshness of every cached view",
		RunE: withDependencies(func(ctx context.Context, deps *cmd.Dependencies) error {
			status, err := deps.ViewReaderService.CacheStatus(ctx)
			if err != nil {
				return err
			}
			return printJson(os.Stdout, status)
		}),
	}

	var filter, method string
	invalidate := &cobra.Command{
		Use:   "invalidate",
		Short: "Clear one view, or all of them",
		RunE: withDependencies(func(ctx context.Context, deps *cmd.Dependencies) error {
			var key *domain.ViewKey
			if filter != "" || method != "" {
				f, err := domain.ParseFilterCategory(filter)
				if err != nil {
					return err
				}
				m, err := domain.ParseCalculationMethod(method)
				if err != nil {
					return err
				}
				key = &domain.ViewKey{Filter: f, Method: m}
			}
			return deps.ViewReaderService.InvalidateCache(ctx, key)
		}),
	}
	invalidate.Flags().StringVar(&filter, "filter", "", "filter category")
	invalidate.Flags().StringVar(&method, "method", "", "calculation method")

	c.AddCommand(status, invalidate)
	return c
}
