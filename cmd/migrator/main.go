package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	dsnFlag        = "dsn"
	migrationsFlag = "migrations-path"
)

func main() {
	dsn, migrationsPath := parseFlags()
	applyMigrations(dsn, migrationsPath)
}

func parseFlags() (dsn, migrationsPath string) {
	dsnP := pflag.StringP(dsnFlag, "d", "", "orders database connection string")
	pathP := pflag.StringP(migrationsFlag, "m", "", "path to migration files")
	pflag.Parse()

	var errs []error
	if *dsnP == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", dsnFlag))
	}
	if *pathP == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationsFlag))
	}
	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		os.Exit(2)
	}
	return *dsnP, *pathP
}

func applyMigrations(dsn, migrationsPath string) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("pgx5://%s", dsn),
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		os.Exit(2)
	}

	m.Log = migrateLogger{slog.Default()}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("database is up to date")
			return
		}
		slog.Error("failed to migrate", "err", err)
		os.Exit(2)
	}
	m.Log.Printf("migrations applied")
}

type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l migrateLogger) Verbose() bool { return true }
