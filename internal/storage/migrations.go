package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS vehicles (
					slug TEXT PRIMARY KEY,
					external_id TEXT,
					tipus_vehicle TEXT,
					marca_cotxe TEXT,
					marca_moto TEXT,
					models_cotxe TEXT,
					models_moto TEXT,
					estat_vehicle TEXT,
					tipus_combustible TEXT,
					tipus_propulsor TEXT,
					tipus_canvi TEXT,
					carrosseria_cotxe TEXT,
					carrosseria_moto TEXT,
					carrosseria_caravana TEXT,
					color_vehicle TEXT,
					tipus_tapisseria TEXT,
					color_tapisseria TEXT,
					titol_anunci TEXT,
					descripcio_anunci TEXT,
					preu REAL NOT NULL DEFAULT 0,
					quilometratge INTEGER NOT NULL DEFAULT 0,
					any_fabricacio INTEGER NOT NULL DEFAULT 0,
					destacat INTEGER NOT NULL DEFAULT 0,
					preu_antic TEXT NOT NULL DEFAULT '',
					preu_mensual TEXT NOT NULL DEFAULT '',
					preu_diari TEXT NOT NULL DEFAULT '',
					actiu INTEGER NOT NULL DEFAULT 0,
					venut INTEGER NOT NULL DEFAULT 0,
					aire_acondicionat INTEGER NOT NULL DEFAULT 0,
					vehicle_fumador INTEGER NOT NULL DEFAULT 0,
					llibre_manteniment INTEGER NOT NULL DEFAULT 0,
					revisions_oficials INTEGER NOT NULL DEFAULT 0,
					impost_deduible INTEGER NOT NULL DEFAULT 0,
					vehicle_a_canvi INTEGER NOT NULL DEFAULT 0,
					extres_cotxe TEXT,
					extres_moto TEXT,
					extres_autocaravana TEXT,
					galeria_vehicle TEXT,
					data_creacio DATETIME,
					status TEXT NOT NULL DEFAULT 'publish',
					needs_sync INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_vehicles_tipus ON vehicles(tipus_vehicle)`,
				`CREATE INDEX idx_vehicles_venut ON vehicles(venut)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Taxonomy whitelist table",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS taxonomies (
					taxonomy TEXT NOT NULL,
					slug TEXT NOT NULL,
					label TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (taxonomy, slug)
				)`,
				`CREATE INDEX idx_taxonomies_taxonomy ON taxonomies(taxonomy)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
