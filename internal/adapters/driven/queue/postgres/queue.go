package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Ensure Queue implements TaskQueue
var _ driven.TaskQueue = (*Queue)(nil)

// Queue implements TaskQueue using PostgreSQL with SKIP LOCKED for reliable
// task processing. This is the fallback queue when Redis is not available.
type Queue struct {
	db *sql.DB
}

// NewQueue creates a new PostgreSQL-backed task queue.
// Assumes the tasks table has been created via InitSchema.
func NewQueue(db *sql.DB) *Queue {
	return &Queue{db: db}
}

// Enqueue adds a task to the queue
func (q *Queue) Enqueue(ctx context.Context, task *domain.Task) error {
	payload, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	query := `
		INSERT INTO tasks (
			id, type, payload, status,
			attempts, max_attempts, error, created_at, updated_at, scheduled_for
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = q.db.ExecContext(ctx, query,
		task.ID,
		task.Type,
		payload,
		task.Status,
		task.Attempts,
		task.MaxAttempts,
		task.Error,
		task.CreatedAt,
		task.UpdatedAt,
		task.ScheduledFor,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	return nil
}

// DequeueWithTimeout retrieves the next task, waiting up to timeout seconds.
// Uses SELECT FOR UPDATE SKIP LOCKED so only one worker gets each task.
func (q *Queue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	selectQuery := `
		SELECT id, type, payload, status,
			   attempts, max_attempts, error, created_at, updated_at,
			   started_at, completed_at, scheduled_for
		FROM tasks
		WHERE status = $1
		  AND scheduled_for <= NOW()
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`

	var task domain.Task
	var payload []byte
	var startedAt, completedAt sql.NullTime

	err = tx.QueryRowContext(ctx, selectQuery, domain.TaskStatusPending).Scan(
		&task.ID,
		&task.Type,
		&payload,
		&task.Status,
		&task.Attempts,
		&task.MaxAttempts,
		&task.Error,
		&task.CreatedAt,
		&task.UpdatedAt,
		&startedAt,
		&completedAt,
		&task.ScheduledFor,
	)

	if err == sql.ErrNoRows {
		_ = tx.Rollback()

		// If a timeout was given, wait once and retry
		if timeout > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(timeout) * time.Second):
				return q.DequeueWithTimeout(ctx, 0)
			}
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select task: %w", err)
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &task.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal payload: %w", err)
		}
	}
	if startedAt.Valid {
		task.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}

	now := time.Now()
	updateQuery := `
		UPDATE tasks
		SET status = $1, started_at = $2, updated_at = $3, attempts = attempts + 1
		WHERE id = $4
	`
	_, err = tx.ExecContext(ctx, updateQuery, domain.TaskStatusProcessing, now, now, task.ID)
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	task.Status = domain.TaskStatusProcessing
	task.StartedAt = &now
	task.UpdatedAt = now
	task.Attempts++

	return &task, nil
}

// Ack marks a task as completed
func (q *Queue) Ack(ctx context.Context, taskID string) error {
	now := time.Now()
	query := `
		UPDATE tasks
		SET status = $1, completed_at = $2, updated_at = $3, error = ''
		WHERE id = $4
	`

	result, err := q.db.ExecContext(ctx, query, domain.TaskStatusCompleted, now, now, taskID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Nack marks a task as failed, scheduling a retry if attempts remain
func (q *Queue) Nack(ctx context.Context, taskID string, reason string) error {
	task, err := q.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return domain.ErrNotFound
	}

	now := time.Now()

	if task.CanRetry() {
		backoff := time.Duration(1<<task.Attempts) * time.Second
		if backoff > 5*time.Minute {
			backoff = 5 * time.Minute
		}

		query := `
			UPDATE tasks
			SET status = $1, error = $2, updated_at = $3, scheduled_for = $4
			WHERE id = $5
		`
		_, err = q.db.ExecContext(ctx, query,
			domain.TaskStatusPending, reason, now, now.Add(backoff), taskID)
	} else {
		query := `
			UPDATE tasks
			SET status = $1, error = $2, updated_at = $3
			WHERE id = $4
		`
		_, err = q.db.ExecContext(ctx, query,
			domain.TaskStatusFailed, reason, now, taskID)
	}

	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID
func (q *Queue) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `
		SELECT id, type, payload, status,
			   attempts, max_attempts, error, created_at, updated_at,
			   started_at, completed_at, scheduled_for
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	var payload []byte
	var startedAt, completedAt sql.NullTime

	err := q.db.QueryRowContext(ctx, query, taskID).Scan(
		&task.ID,
		&task.Type,
		&payload,
		&task.Status,
		&task.Attempts,
		&task.MaxAttempts,
		&task.Error,
		&task.CreatedAt,
		&task.UpdatedAt,
		&startedAt,
		&completedAt,
		&task.ScheduledFor,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select task: %w", err)
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &task.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal payload: %w", err)
		}
	}
	if startedAt.Valid {
		task.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}

	return &task, nil
}

// Ping checks if the queue backend is healthy
func (q *Queue) Ping(ctx context.Context) error {
	return q.db.PingContext(ctx)
}

// Close is a no-op; the database connection is shared
func (q *Queue) Close() error {
	return nil
}
