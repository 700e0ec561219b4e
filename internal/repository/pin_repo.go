package repository

import (
	"context"
	"errors"
	"fmt"

	"relief_map/internal/model"

	"github.com/jackc/pgx/v5"
)

const pinColumns = `id, type, category, details, quantity, lat, lng, status, created_by, created_at`

// PinRepository defines operations for pin data
type PinRepository interface {
	Create(ctx context.Context, pin *model.Pin) error
	FindByID(ctx context.Context, id string) (*model.Pin, error)
	FindRecent(ctx context.Context, limit int) ([]model.Pin, error)
	UpdateStatus(ctx context.Context, id, status string) error
	CountAll(ctx context.Context) (int, error)
	CountByType(ctx context.Context, pinType string) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type pinRepository struct {
	db PgxIface
}

// NewPinRepository creates a new PinRepository
func NewPinRepository(db PgxIface) PinRepository {
	return &pinRepository{db: db}
}

// Create inserts a new pin into the database
func (r *pinRepository) Create(ctx context.Context, pin *model.Pin) error {
	sql := `INSERT INTO pins (id, type, category, details, quantity, lat, lng, status, created_by, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, sql,
		pin.ID, pin.Type, pin.Category, pin.Details, pin.Quantity,
		pin.Lat, pin.Lng, pin.Status, pin.CreatedBy, pin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pin: %w", err)
	}
	return nil
}

// FindByID retrieves a pin by its ID. Returns nil when no pin matches.
func (r *pinRepository) FindByID(ctx context.Context, id string) (*model.Pin, error) {
	pin := &model.Pin{}
	sql := `SELECT ` + pinColumns + ` FROM pins WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&pin.ID, &pin.Type, &pin.Category, &pin.Details, &pin.Quantity,
		&pin.Lat, &pin.Lng, &pin.Status, &pin.CreatedBy, &pin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pin by ID: %w", err)
	}
	return pin, nil
}

// FindRecent retrieves the newest pins first, capped at limit
func (r *pinRepository) FindRecent(ctx context.Context, limit int) ([]model.Pin, error) {
	sql := `SELECT ` + pinColumns + ` FROM pins ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pins: %w", err)
	}
	defer rows.Close()

	var pins []model.Pin
	for rows.Next() {
		var p model.Pin
		if err := rows.Scan(
			&p.ID, &p.Type, &p.Category, &p.Details, &p.Quantity,
			&p.Lat, &p.Lng, &p.Status, &p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pin row: %w", err)
		}
		pins = append(pins, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pin rows: %w", err)
	}
	return pins, nil
}

// UpdateStatus sets a pin's verification status
func (r *pinRepository) UpdateStatus(ctx context.Context, id, status string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE pins SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update pin status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("pin not found for status update")
	}
	return nil
}

// CountAll returns the total number of pins
func (r *pinRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pins: %w", err)
	}
	return count, nil
}

// CountByType returns the number of pins of the given type
func (r *pinRepository) CountByType(ctx context.Context, pinType string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pins WHERE type = $1`, pinType).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pins by type: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of pins with the given status
func (r *pinRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pins WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pins by status: %w", err)
	}
	return count, nil
}
