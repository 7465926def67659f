package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, code, name, type, capacity, notes, created_at, updated_at`

// LocationRepo implementación de LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación nueva.
func (r *LocationRepo) Create(location *entity.WarehouseLocation) error {
	query := `
		INSERT INTO warehouse_locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Code, location.Name, location.Type,
		location.Capacity, location.Notes, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.WarehouseLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM warehouse_locations WHERE id = $1`
	return r.getOne(query, id, "get location")
}

// GetByCode obtiene una ubicación por código.
func (r *LocationRepo) GetByCode(code string) (*entity.WarehouseLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM warehouse_locations WHERE code = $1`
	return r.getOne(query, code, "get location by code")
}

func (r *LocationRepo) getOne(query, arg, op string) (*entity.WarehouseLocation, error) {
	var l entity.WarehouseLocation
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.Code, &l.Name, &l.Type, &l.Capacity, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

// Update actualiza una ubicación existente. Code no cambia.
func (r *LocationRepo) Update(location *entity.WarehouseLocation) error {
	query := `
		UPDATE warehouse_locations SET name = $2, type = $3, capacity = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, location.Type, location.Capacity,
		location.Notes, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// List lista ubicaciones con paginación.
func (r *LocationRepo) List(limit, offset int) ([]*entity.WarehouseLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM warehouse_locations ORDER BY code ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseLocation
	for rows.Next() {
		var l entity.WarehouseLocation
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.Type, &l.Capacity,
			&l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
