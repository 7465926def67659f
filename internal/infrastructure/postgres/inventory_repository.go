package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, product_id, lot_id, location_id, quantity_on_hand, quantity_allocated, last_counted_at, created_at, updated_at`

// InventoryRepo implementación del Ledger Store sobre PostgreSQL (usable con pool o tx).
// La llave natural de una fila es (lot_id, location_id) para productos con lote
// y (product_id, location_id) para break-bulk; ambas con constraint único.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventoryRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ID, &rec.ProductID, &rec.LotID, &rec.LocationID,
		&rec.QuantityOnHand, &rec.QuantityAllocated, &rec.LastCountedAt,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByID obtiene una fila de saldo por ID. Devuelve nil sin error si no existe.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	rec, err := scanInventoryRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// GetByIDForUpdate obtiene la fila por ID y la bloquea (SELECT FOR UPDATE).
func (r *InventoryRepo) GetByIDForUpdate(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1 FOR UPDATE`
	rec, err := scanInventoryRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return rec, nil
}

// naturalKeyArgs arma el WHERE de la llave natural: lot_id cuando hay lote,
// product_id + lot_id IS NULL para break-bulk.
func naturalKeyArgs(productID string, lotID *string, locationID string) (string, []any) {
	if lotID != nil {
		return `lot_id = $1 AND location_id = $2`, []any{*lotID, locationID}
	}
	return `product_id = $1 AND lot_id IS NULL AND location_id = $2`, []any{productID, locationID}
}

// Get busca la fila por su llave natural. Devuelve nil sin error si no existe.
func (r *InventoryRepo) Get(productID string, lotID *string, locationID string) (*entity.InventoryRecord, error) {
	where, args := naturalKeyArgs(productID, lotID, locationID)
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE ` + where
	rec, err := scanInventoryRecord(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// GetForUpdate busca la fila por su llave natural y la bloquea.
func (r *InventoryRepo) GetForUpdate(productID string, lotID *string, locationID string) (*entity.InventoryRecord, error) {
	where, args := naturalKeyArgs(productID, lotID, locationID)
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE ` + where + ` FOR UPDATE`
	rec, err := scanInventoryRecord(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return rec, nil
}

// ListAvailableByProductForUpdate trae las filas del producto con disponible > 0
// en orden FIFO (created_at ASC, id ASC como desempate estable) y las bloquea.
func (r *InventoryRepo) ListAvailableByProductForUpdate(productID string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE product_id = $1 AND quantity_on_hand - quantity_allocated > 0
		ORDER BY created_at ASC, id ASC
		FOR UPDATE`
	return r.listForUpdate(query, productID, "list available inventory")
}

// ListAllocatedByProductForUpdate trae las filas del producto con asignado > 0
// en el mismo orden FIFO, bloqueadas (para despachos).
func (r *InventoryRepo) ListAllocatedByProductForUpdate(productID string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE product_id = $1 AND quantity_allocated > 0
		ORDER BY created_at ASC, id ASC
		FOR UPDATE`
	return r.listForUpdate(query, productID, "list allocated inventory")
}

func (r *InventoryRepo) listForUpdate(query, productID, op string) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.LotID, &rec.LocationID,
			&rec.QuantityOnHand, &rec.QuantityAllocated, &rec.LastCountedAt,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Create persiste una fila de saldo nueva.
func (r *InventoryRepo) Create(record *entity.InventoryRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory (id, product_id, lot_id, location_id, quantity_on_hand, quantity_allocated, last_counted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.LotID, record.LocationID,
		record.QuantityOnHand, record.QuantityAllocated, record.LastCountedAt,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// UpdateQuantities persiste on hand, asignado y last_counted_at de una fila ya
// bloqueada. El invariante se valida en la entidad antes de llamar; el CHECK de
// la tabla es el respaldo de último recurso.
func (r *InventoryRepo) UpdateQuantities(record *entity.InventoryRecord) error {
	query := `
		UPDATE inventory
		SET quantity_on_hand = $2, quantity_allocated = $3, last_counted_at = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		record.ID, record.QuantityOnHand, record.QuantityAllocated,
		record.LastCountedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory quantities: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("fila de saldo %s: %w", record.ID, domain.ErrMissingInventoryRecord)
	}
	return nil
}

// List lista filas de saldo con filtros y paginación.
func (r *InventoryRepo) List(filter repository.InventoryFilter) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	query += " ORDER BY created_at ASC, id ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.LotID, &rec.LocationID,
			&rec.QuantityOnHand, &rec.QuantityAllocated, &rec.LastCountedAt,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
