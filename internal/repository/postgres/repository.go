// Package postgres stores tasks in PostgreSQL through a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "task-list/internal/errors"
	"task-list/internal/logging"
	"task-list/internal/repository"
)

const (
	tasksTable = "tasks"

	// positionLockKey serializes position assignment across connections
	positionLockKey int64 = 0x7461736b6c697374
)

// PostgresRepository implements repository.Repository backed by Postgres
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ repository.Repository = (*PostgresRepository)(nil)

// New connects to dsn, makes sure the schema exists and returns a repository
func New(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, apperrors.NewDatabaseError("connect", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperrors.NewDatabaseError("ping", err)
	}

	repo := NewWithPool(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logging.Debugln("connected to postgres")
	return repo, nil
}

// NewWithPool wraps an existing pool. The schema is not touched.
func NewWithPool(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the tasks table and its position index if missing
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r == nil || r.pool == nil {
		return fmt.Errorf("task repository not initialized")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tasksTable + ` (
    id         BIGSERIAL PRIMARY KEY,
    title      VARCHAR(500) NOT NULL,
    position   BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_position ON ` + tasksTable + ` (position)`,
	}

	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return apperrors.NewDatabaseError("ensure schema", err)
		}
	}
	return nil
}

// Close releases the pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateTask takes a transaction-scoped advisory lock, reads the current
// maximum position and inserts the task one past it
func (r *PostgresRepository) CreateTask(ctx context.Context, title string, createdAt time.Time) (*repository.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, positionLockKey); err != nil {
		return nil, apperrors.NewDatabaseError("lock positions", err)
	}

	var maxPosition *int64
	if err := tx.QueryRow(ctx, `SELECT MAX(position) FROM `+tasksTable).Scan(&maxPosition); err != nil {
		return nil, apperrors.NewDatabaseError("read max position", err)
	}

	task := &repository.Task{
		Title:    title,
		Position: repository.NextPosition(maxPosition),
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO `+tasksTable+` (title, position, created_at) VALUES ($1, $2, $3) RETURNING id, created_at`,
		title, task.Position, createdAt.UTC(),
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return nil, apperrors.NewDatabaseError("insert task", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.NewDatabaseError("commit transaction", err)
	}

	task.CreatedAt = task.CreatedAt.UTC()
	return task, nil
}

// ListTasks returns all tasks ordered by position
func (r *PostgresRepository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, position, created_at FROM `+tasksTable+` ORDER BY position ASC`)
	if err != nil {
		return nil, apperrors.NewDatabaseError("query tasks", err)
	}
	defer rows.Close()

	tasks := make([]*repository.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan tasks", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("iterate tasks", err)
	}
	return tasks, nil
}

// GetTask retrieves a task by ID
func (r *PostgresRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, title, position, created_at FROM `+tasksTable+` WHERE id = $1`, id)
	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get task", err)
	}
	return task, nil
}

// DeleteTask removes a task by ID
func (r *PostgresRepository) DeleteTask(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+tasksTable+` WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewDatabaseError("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	return nil
}

func scanTask(row pgx.Row) (*repository.Task, error) {
	task := &repository.Task{}
	if err := row.Scan(&task.ID, &task.Title, &task.Position, &task.CreatedAt); err != nil {
		return nil, err
	}
	task.CreatedAt = task.CreatedAt.UTC()
	return task, nil
}
