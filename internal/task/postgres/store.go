package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/prateek4576/mytodoapp/internal/db"
	"github.com/prateek4576/mytodoapp/internal/task"
)

// Store is the PostgreSQL task store.
type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

const taskColumns = `id, user_id, title, description, completed, created_at`

func scanTask(row *sql.Row) (*task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, task.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (s *Store) FindByID(ctx context.Context, id, userID uuid.UUID) (*task.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	return scanTask(row)
}

func (s *Store) Insert(ctx context.Context, n task.NewTask) (*task.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (user_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING `+taskColumns+`
	`, n.UserID, n.Title, n.Description)

	return scanTask(row)
}

func (s *Store) Update(ctx context.Context, id, userID uuid.UUID, u task.Update) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $3, description = $4, completed = $5
		WHERE id = $1 AND user_id = $2
	`, id, userID, u.Title, u.Description, u.Completed)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrNotFound
	}

	return nil
}
