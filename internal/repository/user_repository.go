package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academy-api/internal/models"
)

const userColumns = `id, name, email, login, password_hash, type`

// UserRepository provides database access for user management.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindAll returns users matching the filter ordered by id.
func (r *UserRepository) FindAll(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users", userColumns)
	var args []interface{}
	if filter.Type != nil {
		query += " WHERE type = $1"
		args = append(args, *filter.Type)
	}
	query += " ORDER BY id"

	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, "id", id)
}

// FindByLogin returns a user by login.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.findOne(ctx, "login", login)
}

func (r *UserRepository) findOne(ctx context.Context, column string, value interface{}) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s = $1 LIMIT 1", userColumns, column)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by %s: %w", column, err)
	}
	return &user, nil
}

// Create inserts a new user and stores the generated id on it.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (name, email, login, password_hash, type) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, user.Name, user.Email, user.Login, user.PasswordHash, user.Type).Scan(&user.ID); err != nil {
		return translate(err, "create user")
	}
	return nil
}

// Update applies the supplied fields and reports the affected row count.
func (r *UserRepository) Update(ctx context.Context, id int64, update models.UserUpdate) (int64, error) {
	var set setClause
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.Email != nil {
		set.add("email", *update.Email)
	}
	if update.Login != nil {
		set.add("login", *update.Login)
	}
	if update.PasswordHash != nil {
		set.add("password_hash", *update.PasswordHash)
	}
	if update.Type != nil {
		set.add("type", *update.Type)
	}
	if set.empty() {
		return 0, nil
	}

	query, args := set.query("users", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translate(err, fmt.Sprintf("update user %d", id))
	}
	return res.RowsAffected()
}

// Delete removes the user and cascades to their enrollments.
func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user %d: %w", id, err)
	}
	return res.RowsAffected()
}
