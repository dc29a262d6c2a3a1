package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/prateek4576/mytodoapp/internal/db"
	"github.com/prateek4576/mytodoapp/internal/user"
)

const uniqueViolation = "23505"

// Store is the PostgreSQL credential store.
type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

const userColumns = `id, email, password_hash, google_id, created_at`

func scanUser(row *sql.Row) (*user.User, error) {
	var (
		u            user.User
		passwordHash sql.NullString
		googleID     sql.NullString
	)

	err := row.Scan(&u.ID, &u.Email, &passwordHash, &googleID, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if passwordHash.Valid {
		u.PasswordHash = &passwordHash.String
	}
	if googleID.Valid {
		u.GoogleID = &googleID.String
	}

	return &u, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	return scanUser(row)
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	return scanUser(row)
}

func (s *Store) Insert(ctx context.Context, n user.NewUser) (*user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, google_id)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns+`
	`, n.Email, n.PasswordHash, n.GoogleID)

	u, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, user.ErrDuplicateEmail
		}
		return nil, err
	}

	return u, nil
}

func (s *Store) Update(ctx context.Context, id uuid.UUID, u user.Update) (*user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET password_hash = COALESCE($2, password_hash),
		    google_id = COALESCE($3, google_id)
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id, u.PasswordHash, u.GoogleID)

	return scanUser(row)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM users
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}

	return nil
}
