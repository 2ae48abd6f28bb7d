package migrations

import (
	"database/sql"
	"fmt"
)

func init() {
	RegisterGoMigration(2, Up_000002_add_task_position, Down_000002_add_task_position)
}

// Up_000002_add_task_position adds the ordering column. Existing rows are
// numbered 0..n-1 in creation (id) order before the unique index goes on.
func Up_000002_add_task_position(tx *sql.Tx) error {
	if _, err := tx.Exec(`ALTER TABLE tasks ADD COLUMN position INTEGER NOT NULL DEFAULT 0`); err != nil {
		return fmt.Errorf("failed to add position column: %w", err)
	}

	// Read all ids first; updating while iterating holds the cursor open
	rows, err := tx.Query(`SELECT id FROM tasks ORDER BY id ASC`)
	if err != nil {
		return fmt.Errorf("failed to query tasks: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating tasks: %w", err)
	}
	rows.Close()

	for position, id := range ids {
		if _, err := tx.Exec(`UPDATE tasks SET position = ? WHERE id = ?`, position, id); err != nil {
			return fmt.Errorf("failed to backfill position for task %d: %w", id, err)
		}
	}

	if _, err := tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position)`); err != nil {
		return fmt.Errorf("failed to create position index: %w", err)
	}

	return nil
}

// Down_000002_add_task_position removes the ordering column and its index.
func Down_000002_add_task_position(tx *sql.Tx) error {
	if _, err := tx.Exec(`DROP INDEX IF EXISTS idx_tasks_position`); err != nil {
		return fmt.Errorf("failed to drop position index: %w", err)
	}
	if _, err := tx.Exec(`ALTER TABLE tasks DROP COLUMN position`); err != nil {
		return fmt.Errorf("failed to drop position column: %w", err)
	}
	return nil
}
