package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

const userColumns = `id, username, email, password_hash, role, created_at`

type userRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB, m *metrics.Metrics) repository.UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role, created_at)
		VALUES (:id, :username, :email, :password_hash, :role, :created_at)
	`
	_, err := r.namedExec(ctx, "user.create", query, user)
	return mapError(err, "create user", "user", user.ID)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.get(ctx, "user.get", &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get user", "user", id)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET username = :username, email = :email, password_hash = :password_hash, role = :role
		WHERE id = :id
	`
	n, err := r.namedExec(ctx, "user.update", query, user)
	if err != nil {
		return mapError(err, "update user", "user", user.ID)
	}
	if n == 0 {
		return errors.NotFound("user", user.ID)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.exec(ctx, "user.delete", `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete user", "user", id)
	}
	if n == 0 {
		return errors.NotFound("user", id)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	users := []*model.User{}
	err := r.selectAll(ctx, "user.list", &users, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, mapError(err, "list users", "user", nil)
	}
	return users, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.get(ctx, "user.get_by_username", &user, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, mapError(err, "get user", "user", username)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.get(ctx, "user.get_by_email", &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, mapError(err, "get user", "user with email", email)
	}
	return &user, nil
}
