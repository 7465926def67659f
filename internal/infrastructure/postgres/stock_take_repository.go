package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StockTakeRepository = (*StockTakeRepo)(nil)

const stockTakeColumns = `id, number, status, initiated_by, started_at, completed_at, notes, created_at, updated_at`
const stockTakeItemColumns = `id, stock_take_id, inventory_record_id, product_id, lot_id, location_id, expected_quantity, counted_quantity, counted_by, counted_at, reason_for_discrepancy, adjustment_movement_id, created_at`

// StockTakeRepo implementación de StockTakeRepository sobre PostgreSQL
// (usable con pool o tx).
type StockTakeRepo struct {
	q Querier
}

// NewStockTakeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTakeRepository(q Querier) *StockTakeRepo {
	return &StockTakeRepo{q: q}
}

// Create persiste un conteo nuevo (sin ítems; se insertan con CreateItems).
func (r *StockTakeRepo) Create(stockTake *entity.StockTake) error {
	if stockTake.ID == "" {
		stockTake.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_takes (` + stockTakeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		stockTake.ID, stockTake.Number, stockTake.Status, stockTake.InitiatedBy,
		stockTake.StartedAt, stockTake.CompletedAt, stockTake.Notes,
		stockTake.CreatedAt, stockTake.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock take: %w", err)
	}
	return nil
}

func (r *StockTakeRepo) getByID(id string, forUpdate bool) (*entity.StockTake, error) {
	query := `SELECT ` + stockTakeColumns + ` FROM stock_takes WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var st entity.StockTake
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&st.ID, &st.Number, &st.Status, &st.InitiatedBy, &st.StartedAt,
		&st.CompletedAt, &st.Notes, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock take: %w", err)
	}
	items, err := r.listItems(id)
	if err != nil {
		return nil, err
	}
	st.Items = items
	return &st, nil
}

// GetByID carga el conteo con sus ítems. Devuelve nil sin error si no existe.
func (r *StockTakeRepo) GetByID(id string) (*entity.StockTake, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate carga el conteo con sus ítems y bloquea la cabecera, para
// serializar Process contra transiciones concurrentes.
func (r *StockTakeRepo) GetByIDForUpdate(id string) (*entity.StockTake, error) {
	return r.getByID(id, true)
}

func (r *StockTakeRepo) listItems(stockTakeID string) ([]*entity.StockTakeItem, error) {
	query := `SELECT ` + stockTakeItemColumns + ` FROM stock_take_items WHERE stock_take_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, stockTakeID)
	if err != nil {
		return nil, fmt.Errorf("list stock take items: %w", err)
	}
	defer rows.Close()
	var items []*entity.StockTakeItem
	for rows.Next() {
		var it entity.StockTakeItem
		var reason *string
		if err := rows.Scan(&it.ID, &it.StockTakeID, &it.InventoryRecordID,
			&it.ProductID, &it.LotID, &it.LocationID, &it.ExpectedQuantity,
			&it.CountedQuantity, &it.CountedBy, &it.CountedAt, &reason,
			&it.AdjustmentMovementID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock take item: %w", err)
		}
		if reason != nil {
			it.ReasonForDiscrepancy = *reason
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus cambia el estado del conteo (y completed_at si aplica). El
// WHERE exige el estado previo: cero filas afectadas significa que otra
// transacción lo movió primero y se devuelve ErrConflict.
func (r *StockTakeRepo) UpdateStatus(id, status string, completedAt *time.Time, from ...string) error {
	query := `UPDATE stock_takes SET status = $2, completed_at = COALESCE($3, completed_at), updated_at = now() WHERE id = $1`
	args := []any{id, status, completedAt}
	if len(from) > 0 {
		query += ` AND status = ANY($4)`
		args = append(args, from)
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update stock take status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List lista conteos con filtros, más reciente primero. No carga ítems.
func (r *StockTakeRepo) List(filter repository.StockTakeFilter) ([]*entity.StockTake, error) {
	query := `SELECT ` + stockTakeColumns + ` FROM stock_takes WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock takes: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTake
	for rows.Next() {
		var st entity.StockTake
		if err := rows.Scan(&st.ID, &st.Number, &st.Status, &st.InitiatedBy,
			&st.StartedAt, &st.CompletedAt, &st.Notes, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock take: %w", err)
		}
		list = append(list, &st)
	}
	return list, rows.Err()
}

// CreateItems inserta los ítems de la foto inicial del conteo.
func (r *StockTakeRepo) CreateItems(items []*entity.StockTakeItem) error {
	query := `
		INSERT INTO stock_take_items (id, stock_take_id, inventory_record_id, product_id, lot_id, location_id, expected_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), query,
			it.ID, it.StockTakeID, it.InventoryRecordID, it.ProductID,
			it.LotID, it.LocationID, it.ExpectedQuantity, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert stock take item: %w", err)
		}
	}
	return nil
}

// GetItemByID obtiene un ítem de conteo por ID.
func (r *StockTakeRepo) GetItemByID(itemID string) (*entity.StockTakeItem, error) {
	query := `SELECT ` + stockTakeItemColumns + ` FROM stock_take_items WHERE id = $1`
	var it entity.StockTakeItem
	var reason *string
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&it.ID, &it.StockTakeID, &it.InventoryRecordID, &it.ProductID, &it.LotID,
		&it.LocationID, &it.ExpectedQuantity, &it.CountedQuantity, &it.CountedBy,
		&it.CountedAt, &reason, &it.AdjustmentMovementID, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock take item: %w", err)
	}
	if reason != nil {
		it.ReasonForDiscrepancy = *reason
	}
	return &it, nil
}

// UpdateItemCount registra (o corrige) el conteo físico de un ítem.
func (r *StockTakeRepo) UpdateItemCount(itemID string, update repository.StockTakeItemUpdate) error {
	query := `
		UPDATE stock_take_items
		SET counted_quantity = $2, counted_by = $3, counted_at = $4, reason_for_discrepancy = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		itemID, update.CountedQuantity, update.CountedBy, update.CountedAt,
		update.ReasonForDiscrepancy,
	)
	if err != nil {
		return fmt.Errorf("update stock take item count: %w", err)
	}
	return nil
}

// SetItemAdjustment enlaza el movimiento Adjustment producido al procesar.
func (r *StockTakeRepo) SetItemAdjustment(itemID, movementID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_take_items SET adjustment_movement_id = $2 WHERE id = $1`,
		itemID, movementID,
	)
	if err != nil {
		return fmt.Errorf("set stock take item adjustment: %w", err)
	}
	return nil
}
