package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5:// scheme
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending up migration. databaseURL must use the
// pgx5:// scheme.
func Migrate(databaseURL string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("postgres.Migrate: source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("postgres.Migrate: init: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("postgres.Migrate: close")
		}
	}()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Debug().Msg("database schema up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("postgres.Migrate: up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("postgres.Migrate: version: %w", err)
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("database schema migrated")
	return nil
}
