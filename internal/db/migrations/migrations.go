// internal/db/migrations/migrations.go
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jenny-yujl/marketingTrain/internal/db"
)

//go:embed sql
var files embed.FS

type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// RunMigrations applies every pending migration for the database's dialect.
// Already-applied versions are skipped, so it is safe to run on every start.
func RunMigrations(ctx context.Context, database *db.Database, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(ctx, database); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, database)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrations, err := Load(database.Dialect)
	if err != nil {
		return fmt.Errorf("failed to get migration files: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(ctx, database, m); err != nil {
			return fmt.Errorf("failed to apply migration %04d_%s: %w", m.Version, m.Name, err)
		}
		logger.Info("applied migration",
			zap.Int("version", m.Version),
			zap.String("name", m.Name),
			zap.String("dialect", string(database.Dialect)))
	}

	return nil
}

// Rollback reverts the most recently applied migrations, newest first, up to
// steps of them. It returns the number actually reverted.
func Rollback(ctx context.Context, database *db.Database, logger *zap.Logger, steps int) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if steps <= 0 {
		return 0, fmt.Errorf("rollback steps must be positive, got %d", steps)
	}

	if err := createMigrationsTable(ctx, database); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, database)
	if err != nil {
		return 0, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrations, err := Load(database.Dialect)
	if err != nil {
		return 0, fmt.Errorf("failed to get migration files: %w", err)
	}

	reverted := 0
	for i := len(migrations) - 1; i >= 0 && reverted < steps; i-- {
		m := migrations[i]
		if !applied[m.Version] {
			continue
		}
		if m.Down == "" {
			return reverted, fmt.Errorf("migration %04d_%s has no down script", m.Version, m.Name)
		}
		if err := revertMigration(ctx, database, m); err != nil {
			return reverted, fmt.Errorf("failed to revert migration %04d_%s: %w", m.Version, m.Name, err)
		}
		logger.Info("reverted migration",
			zap.Int("version", m.Version),
			zap.String("name", m.Name),
			zap.String("dialect", string(database.Dialect)))
		reverted++
	}

	return reverted, nil
}

func createMigrationsTable(ctx context.Context, database *db.Database) error {
	_, err := database.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func getAppliedMigrations(ctx context.Context, database *db.Database) (map[int]bool, error) {
	rows, err := database.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// Load returns the embedded migrations for a dialect ordered by version.
func Load(dialect db.Dialect) ([]Migration, error) {
	dir := path.Join("sql", string(dialect))
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, fmt.Errorf("no migrations for dialect %q: %w", dialect, err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, name, err := parseMigrationFilename(entry.Name())
		if err != nil {
			return nil, err
		}
		content, err := fs.ReadFile(files, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		} else if m.Name != name {
			return nil, fmt.Errorf("migration %04d has conflicting names %q and %q", version, m.Name, name)
		}
		if strings.HasSuffix(entry.Name(), ".down.sql") {
			m.Down = string(content)
		} else {
			m.Up = string(content)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" {
			return nil, fmt.Errorf("migration %04d_%s has no up script", m.Version, m.Name)
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func parseMigrationFilename(filename string) (int, string, error) {
	// Expected format: 0001_name.up.sql
	base := path.Base(filename)
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid migration filename format: %s", filename)
	}

	version, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid version in filename %s: %w", filename, err)
	}

	name := strings.TrimSuffix(parts[1], ".sql")
	name = strings.TrimSuffix(name, ".up")
	name = strings.TrimSuffix(name, ".down")
	if name == parts[1] || name == "" {
		return 0, "", fmt.Errorf("invalid migration filename format: %s", filename)
	}

	return version, name, nil
}

// splitStatements breaks a script on semicolons. Migration scripts contain
// no string literals or bodies with embedded semicolons.
func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func applyMigration(ctx context.Context, database *db.Database, migration Migration) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(migration.Up) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	// Record migration
	if _, err := tx.ExecContext(ctx,
		database.Dialect.Rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?) ON CONFLICT (version) DO NOTHING"),
		migration.Version,
		migration.Name,
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

func revertMigration(ctx context.Context, database *db.Database, migration Migration) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(migration.Down) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute down migration: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		database.Dialect.Rebind("DELETE FROM schema_migrations WHERE version = ?"),
		migration.Version,
	); err != nil {
		return fmt.Errorf("failed to unrecord migration: %w", err)
	}

	return tx.Commit()
}
