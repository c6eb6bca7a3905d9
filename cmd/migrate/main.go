// Command migrate runs schema operations for the API database.
//
//	migrate [-timeout 2m] up
//	migrate auto
//	migrate status
//	migrate verify
//	migrate down [version]
//
// down without a version reverts the latest applied migration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/middleware"

	"gorm.io/gorm"
)

var errUsage = errors.New("usage: migrate [-timeout d] <up|auto|status|verify|down> [version]")

// invocation is a parsed command line.
type invocation struct {
	command string
	version int // down only; 0 means latest applied
}

func parseArgs(args []string) (invocation, error) {
	if len(args) < 1 {
		return invocation{}, errUsage
	}
	inv := invocation{command: strings.ToLower(strings.TrimSpace(args[0]))}
	switch inv.command {
	case "up", "auto", "status", "verify":
		if len(args) > 1 {
			return invocation{}, fmt.Errorf("%s takes no arguments: %w", inv.command, errUsage)
		}
	case "down":
		if len(args) > 2 {
			return invocation{}, errUsage
		}
		if len(args) == 2 {
			v, err := strconv.Atoi(args[1])
			if err != nil || v <= 0 {
				return invocation{}, fmt.Errorf("invalid version %q", args[1])
			}
			inv.version = v
		}
	default:
		return invocation{}, fmt.Errorf("unknown command %q: %w", inv.command, errUsage)
	}
	return inv, nil
}

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "Abort the operation after this long")
	flag.Parse()

	if err := run(*timeout, flag.Args()); err != nil {
		middleware.Logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(timeout time.Duration, args []string) error {
	inv, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return execute(ctx, db, cfg, inv)
}

func execute(ctx context.Context, db *gorm.DB, cfg *config.Config, inv invocation) error {
	log := middleware.Logger
	switch inv.command {
	case "up":
		if err := database.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("sql migrations: %w", err)
		}
		log.InfoContext(ctx, "sql migrations applied")

	case "auto":
		cfg.DBSchemaMode = database.SchemaModeAuto
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return fmt.Errorf("auto schema apply: %w", err)
		}
		log.InfoContext(ctx, "automigrations applied")

	case "status":
		status, err := database.GetSchemaStatus(ctx, db, cfg)
		if err != nil {
			return fmt.Errorf("schema status: %w", err)
		}
		log.InfoContext(ctx, "schema status",
			slog.String("mode", status.Mode),
			slog.String("env", status.Environment),
			slog.Bool("run_sql", status.WillRunSQL),
			slog.Bool("run_auto", status.WillRunAutoMigrate),
			slog.Any("applied", status.AppliedVersions),
			slog.Int("pending", len(status.PendingMigrations)))
		for _, m := range status.PendingMigrations {
			log.InfoContext(ctx, "pending migration", slog.String("migration", m.String()))
		}

	case "verify":
		if err := database.VerifyMigrations(ctx, db); err != nil {
			return err
		}
		log.InfoContext(ctx, "schema_migrations matches this build")

	case "down":
		version := inv.version
		if version == 0 {
			latest, err := database.LatestApplied(ctx, db)
			if err != nil {
				return err
			}
			if latest == 0 {
				log.InfoContext(ctx, "nothing to roll back")
				return nil
			}
			version = latest
		}
		if err := database.RollbackMigration(ctx, db, version); err != nil {
			return fmt.Errorf("rollback %d: %w", version, err)
		}
	}
	return nil
}
