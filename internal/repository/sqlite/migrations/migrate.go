package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"

	"task-list/internal/logging"
)

//go:embed *.sql
var migrationsFS embed.FS

// GoMigrationFunc applies or reverts a migration written in Go
type GoMigrationFunc func(tx *sql.Tx) error

// Migration represents a database migration, either plain SQL or Go
type Migration struct {
	Version  int
	Up       string
	Down     string
	UpFunc   GoMigrationFunc
	DownFunc GoMigrationFunc
}

var goMigrations = map[int]Migration{}

// RegisterGoMigration registers a migration implemented in Go. Called from init.
func RegisterGoMigration(version int, up, down GoMigrationFunc) {
	if _, exists := goMigrations[version]; exists {
		panic(fmt.Sprintf("migration %d registered twice", version))
	}
	goMigrations[version] = Migration{Version: version, UpFunc: up, DownFunc: down}
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Refuse to continue over a half-applied migration
	dirty, err := getDirtyMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to check migration state: %w", err)
	}
	if len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state, failed migration(s): %v", dirty)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		logging.Debugf("applying migration %d", migration.Version)
		if err := applyMigration(db, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// RollbackMigration reverts a single applied migration
func RollbackMigration(db *sql.DB, version int) error {
	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version != version {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if err := runStep(tx, migration.Down, migration.DownFunc); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to revert migration %d: %w", version, err)
		}
		if _, err := tx.Exec("DELETE FROM migrations WHERE version = ?", version); err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit()
	}

	return fmt.Errorf("migration %d not found", version)
}

func createMigrationsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		dirty BOOLEAN DEFAULT FALSE
	)`
	_, err := db.Exec(query)
	return err
}

func loadMigrations() ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}
		if _, clash := goMigrations[version]; clash {
			return nil, fmt.Errorf("migration %d defined in both SQL and Go", version)
		}

		upSQL, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := migrationsFS.ReadFile(downFile)
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, Migration{
			Version: version,
			Up:      string(upSQL),
			Down:    string(downSQL),
		})
	}

	for _, migration := range goMigrations {
		migrations = append(migrations, migration)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations WHERE dirty = FALSE")
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

func getDirtyMigrations(db *sql.DB) ([]int, error) {
	rows, err := db.Query("SELECT version FROM migrations WHERE dirty = TRUE ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dirty []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		dirty = append(dirty, version)
	}
	return dirty, rows.Err()
}

// applyMigration records the version as dirty, then runs the migration and
// clears the flag in one transaction. A crash in between leaves the row
// dirty and blocks later runs until someone looks at it.
func applyMigration(db *sql.DB, migration Migration) error {
	if _, err := db.Exec("INSERT INTO migrations (version, dirty) VALUES (?, TRUE)", migration.Version); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if err := runStep(tx, migration.Up, migration.UpFunc); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec("UPDATE migrations SET dirty = FALSE WHERE version = ?", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func runStep(tx *sql.Tx, query string, fn GoMigrationFunc) error {
	if fn != nil {
		return fn(tx)
	}
	if strings.TrimSpace(query) == "" {
		return nil
	}
	_, err := tx.Exec(query)
	return err
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}
