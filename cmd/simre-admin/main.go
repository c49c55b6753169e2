package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"

	"github.com/simre/results-server/internal/repository"
	dbbuilder "github.com/simre/results-server/pkg/database"
)

const envPrefix = "SIMRE"

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCommand(logger).ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCommand(logger *zap.Logger) *ffcli.Command {
	rootFlags := flag.NewFlagSet("simre-admin", flag.ExitOnError)
	driver := rootFlags.String("db-driver", "sqlite3", "database driver")
	dbPath := rootFlags.String("db-path", "./data/simre.db", "database data source")

	open := func(ctx context.Context) (*sql.DB, error) {
		return dbbuilder.New(ctx,
			dbbuilder.WithDriver(*driver),
			dbbuilder.WithDataSource(*dbPath),
			dbbuilder.WithRetry(1, 0),
			dbbuilder.WithSetup(repository.Migrate),
		)
	}

	return &ffcli.Command{
		Name:       "simre-admin",
		ShortUsage: "simre-admin [flags] <subcommand> [flags]",
		ShortHelp:  "Administrative tasks for the SIMRE results server.",
		FlagSet:    rootFlags,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Subcommands: []*ffcli.Command{
			newMigrateCommand(logger, open),
			newAddUserCommand(logger, open),
		},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}
}
