package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

const (
	createUser = `INSERT INTO users (email, name, phone, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	selectUserColumns = `SELECT id, email, name, phone, password_hash, role, created_at, updated_at FROM users`

	findUserByEmail = selectUserColumns + ` WHERE email = $1`
	findUserByID    = selectUserColumns + ` WHERE id = $1`
)

// AuthRepository is the PostgreSQL-backed implementation of ports.AuthRepository.
type AuthRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// Create inserts the user and returns it with its assigned ID.
// A unique_violation on email maps to domain.ErrUserExists.
func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, createUser,
		user.Email, user.Name, user.Phone, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt)

	created := *user
	if err := row.Scan(&created.ID); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
}

func (r *AuthRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, findUserByID, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}
