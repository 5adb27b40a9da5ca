package db

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/pkg/errs"
)

func Migrate(migrationsPath string, cfg config.DBConfig) error {
	m, err := migrate.New(migrationsPath, cfg.BuildDSN())
	if err != nil {
		return errs.Wrap(err, "failed to initialize migrations")
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return errs.Wrap(err, "failed to apply migrations")
	}
	return nil
}
