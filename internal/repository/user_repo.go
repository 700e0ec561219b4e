package repository

import (
	"context"
	"errors"
	"fmt"

	"relief_map/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail is returned when an insert hits the unique constraint on users.email.
var ErrDuplicateEmail = errors.New("email already registered")

const userColumns = `id, name, email, password_hash, role, volunteer_radius, hours, supplies, center_lat, center_lng, created_at`

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindVolunteersWithRadius(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	UpdateCenter(ctx context.Context, id string, lat, lng float64) error
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

type userRepository struct {
	db PgxIface
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db PgxIface) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (id, name, email, password_hash, role, volunteer_radius, hours, supplies, center_lat, center_lng, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, sql,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.VolunteerRadius, user.Hours, user.Supplies, user.CenterLat, user.CenterLng, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email. Returns nil when no user matches;
// the service layer decides whether that is an error.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, sql, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.VolunteerRadius, &user.Hours, &user.Supplies, &user.CenterLat, &user.CenterLng, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.VolunteerRadius, &user.Hours, &user.Supplies, &user.CenterLat, &user.CenterLng, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindAll retrieves all users, newest first
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// FindVolunteersWithRadius retrieves volunteers who asked to be alerted
// (role = volunteer and a positive alert radius).
func (r *userRepository) FindVolunteersWithRadius(ctx context.Context) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE role = $1 AND volunteer_radius > 0`
	rows, err := r.db.Query(ctx, sql, model.RoleVolunteer)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// UpdateRole changes a user's role
func (r *userRepository) UpdateRole(ctx context.Context, id, role string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for role update")
	}
	return nil
}

// UpdateCenter sets a volunteer's operating center coordinates
func (r *userRepository) UpdateCenter(ctx context.Context, id string, lat, lng float64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET center_lat = $1, center_lng = $2 WHERE id = $3`, lat, lng, id)
	if err != nil {
		return fmt.Errorf("failed to update volunteer center: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for center update")
	}
	return nil
}

// Delete removes a user and every pin they created, in a single transaction
// so no partial cascade is ever visible.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM pins WHERE created_by = $1`, id); err != nil {
		tx.Rollback(ctx)
		return fmt.Errorf("failed to delete user's pins: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		tx.Rollback(ctx)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		tx.Rollback(ctx)
		return fmt.Errorf("user not found for deletion")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}

// CountAll returns the total number of users
func (r *userRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CountByRole returns the number of users with the given role
func (r *userRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

func scanUsers(rows pgx.Rows) ([]model.User, error) {
	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
			&u.VolunteerRadius, &u.Hours, &u.Supplies, &u.CenterLat, &u.CenterLng, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}
