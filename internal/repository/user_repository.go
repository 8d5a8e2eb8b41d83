package repository

import (
	"context"
	"errors"

	"whisper-chat/internal/domain/user"
	whisper_errors "whisper-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, profile_photo, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.ProfilePhoto, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return whisper_errors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getUser(ctx, `WHERE id = $1`, id)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getUser(ctx, `WHERE email = $1`, email)
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getUser(ctx, `WHERE username = $1`, username)
}

func (r *PostgresUserRepository) getUser(ctx context.Context, where string, arg any) (user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, username, password_hash, profile_photo, created_at FROM users `+where,
		arg).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.ProfilePhoto, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, whisper_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// SearchUsers performs a case-insensitive substring match on usernames.
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string) ([]user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, username, password_hash, profile_photo, created_at
		 FROM users
		 WHERE username ILIKE '%' || $1 || '%'
		 ORDER BY username ASC`,
		query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.ProfilePhoto, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
