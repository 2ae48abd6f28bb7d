package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"task-list/internal/errors"
	"task-list/internal/logging"
	"task-list/internal/repository"
	"task-list/internal/repository/sqlite/migrations"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DriverModernc is the pure Go driver registered by modernc.org/sqlite
	DriverModernc = "sqlite"
	// DriverMattn is the cgo driver registered by github.com/mattn/go-sqlite3
	DriverMattn = "sqlite3"

	// MemoryPath opens a private in-memory database
	MemoryPath = ":memory:"

	busyTimeoutMillis = 5000
)

// Options tunes how the repository opens and talks to the database
type Options struct {
	Driver       string
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// DefaultOptions returns the options used by New
func DefaultOptions() Options {
	return Options{
		Driver:       DriverModernc,
		QueryTimeout: 5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// SQLiteRepository implements repository.Repository on top of SQLite
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions creates a new SQLite repository instance
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if opts.Driver == "" {
		opts.Driver = DriverModernc
	}

	dsn, err := BuildDSN(opts.Driver, dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// SQLite allows a single writer. Funnelling everything through one
	// connection serializes the read-max-then-insert transaction in
	// CreateTask, and keeps :memory: databases from splitting per connection.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	logging.Debugf("opened sqlite database %s using driver %s", dbPath, opts.Driver)
	return &SQLiteRepository{db: db, opts: opts}, nil
}

// BuildDSN adds the busy timeout and immediate transaction locking to a
// database path, using the parameter syntax of the given driver
func BuildDSN(driverName, dbPath string) (string, error) {
	if dbPath == MemoryPath {
		return dbPath, nil
	}

	path := strings.TrimPrefix(dbPath, "file:")
	switch driverName {
	case DriverModernc:
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_txlock=immediate", path, busyTimeoutMillis), nil
	case DriverMattn:
		return fmt.Sprintf("file:%s?_busy_timeout=%d&_txlock=immediate", path, busyTimeoutMillis), nil
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q", driverName)
	}
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, r.opts.WriteTimeout)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// CreateTask inserts a task at position MAX(position)+1, or 0 when the table
// is empty. The read and the insert share one transaction.
func (r *SQLiteRepository) CreateTask(ctx context.Context, title string, createdAt time.Time) (*repository.Task, error) {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	var maxPosition sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(position) FROM tasks`).Scan(&maxPosition); err != nil {
		return nil, HandleDatabaseError("read max position", err)
	}

	var current *int64
	if maxPosition.Valid {
		current = &maxPosition.Int64
	}
	position := repository.NextPosition(current)

	query := `INSERT INTO tasks (title, position, created_at) VALUES (?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, tx, query, title, position, FormatTimeForDB(createdAt))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, HandleDatabaseError("commit transaction", err)
	}

	return &repository.Task{
		ID:        id,
		Title:     title,
		Position:  position,
		CreatedAt: createdAt.UTC(),
	}, nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT id, title, position, created_at FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasks retrieves all tasks ordered by position
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT id, title, position, created_at FROM tasks ORDER BY position ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), id)
}
