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

var (
	_ repository.OutboundOrderRepository = (*OutboundOrderRepo)(nil)
	_ repository.ShipmentRepository      = (*ShipmentRepo)(nil)
)

const orderColumns = `id, order_number, status, customer_ref, created_by, created_at, updated_at`
const orderLineColumns = `id, order_id, product_id, quantity_ordered, quantity_allocated, quantity_shipped, created_at`

// OutboundOrderRepo implementación de OutboundOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type OutboundOrderRepo struct {
	q Querier
}

// NewOutboundOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutboundOrderRepository(q Querier) *OutboundOrderRepo {
	return &OutboundOrderRepo{q: q}
}

// Create persiste la orden con sus líneas.
func (r *OutboundOrderRepo) Create(order *entity.OutboundOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO outbound_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.Status, order.CustomerRef,
		order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, line := range order.Lines {
		line.OrderID = order.ID
		if err := r.AddLine(line); err != nil {
			return err
		}
	}
	return nil
}

// GetByID carga la orden con sus líneas. Devuelve nil sin error si no existe.
func (r *OutboundOrderRepo) GetByID(id string) (*entity.OutboundOrder, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate carga la orden con sus líneas y bloquea la cabecera, para
// serializar Allocate y Ship contra envíos concurrentes de la misma orden.
func (r *OutboundOrderRepo) GetByIDForUpdate(id string) (*entity.OutboundOrder, error) {
	return r.getByID(id, true)
}

func (r *OutboundOrderRepo) getByID(id string, forUpdate bool) (*entity.OutboundOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM outbound_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.OutboundOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.Status, &o.CustomerRef, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	lines, err := r.listLines(id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *OutboundOrderRepo) listLines(orderID string) ([]*entity.OutboundOrderLineItem, error) {
	query := `SELECT ` + orderLineColumns + ` FROM outbound_order_line_items WHERE order_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.OutboundOrderLineItem
	for rows.Next() {
		var l entity.OutboundOrderLineItem
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.QuantityOrdered,
			&l.QuantityAllocated, &l.QuantityShipped, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// AddLine persiste una línea de orden.
func (r *OutboundOrderRepo) AddLine(line *entity.OutboundOrderLineItem) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO outbound_order_line_items (` + orderLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OrderID, line.ProductID, line.QuantityOrdered,
		line.QuantityAllocated, line.QuantityShipped, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado de la orden. El WHERE exige el estado previo:
// cero filas afectadas significa que otra transacción lo movió primero y se
// devuelve ErrConflict.
func (r *OutboundOrderRepo) UpdateStatus(id, status string, from ...string) error {
	query := `UPDATE outbound_orders SET status = $2, updated_at = now() WHERE id = $1`
	args := []any{id, status}
	if len(from) > 0 {
		query += ` AND status = ANY($3)`
		args = append(args, from)
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// UpdateLineQuantities persiste quantity_allocated y quantity_shipped.
func (r *OutboundOrderRepo) UpdateLineQuantities(line *entity.OutboundOrderLineItem) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE outbound_order_line_items SET quantity_allocated = $2, quantity_shipped = $3 WHERE id = $1`,
		line.ID, line.QuantityAllocated, line.QuantityShipped,
	)
	if err != nil {
		return fmt.Errorf("update order line quantities: %w", err)
	}
	return nil
}

// List lista órdenes con filtros, más reciente primero. No carga líneas.
func (r *OutboundOrderRepo) List(filter repository.OrderFilter) ([]*entity.OutboundOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM outbound_orders WHERE 1=1`
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
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.OutboundOrder
	for rows.Next() {
		var o entity.OutboundOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.Status, &o.CustomerRef,
			&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

const shipmentColumns = `id, shipment_number, order_id, shipped_by, shipped_at, carrier_name, tracking_number, created_at`
const shipmentLineColumns = `id, shipment_id, order_line_id, product_id, inventory_record_id, quantity, created_at`

// ShipmentRepo implementación de ShipmentRepository sobre PostgreSQL (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste el despacho con sus líneas.
func (r *ShipmentRepo) Create(shipment *entity.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		shipment.ID, shipment.ShipmentNumber, shipment.OrderID, shipment.ShippedBy,
		shipment.ShippedAt, shipment.CarrierName, shipment.TrackingNumber, shipment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	for _, line := range shipment.Lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.ShipmentID = shipment.ID
		lineQuery := `
			INSERT INTO shipment_line_items (` + shipmentLineColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.ShipmentID, line.OrderLineID, line.ProductID,
			line.InventoryRecordID, line.Quantity, line.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert shipment line: %w", err)
		}
	}
	return nil
}

// GetByID carga el despacho con sus líneas. Devuelve nil sin error si no existe.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ShipmentNumber, &s.OrderID, &s.ShippedBy, &s.ShippedAt,
		&s.CarrierName, &s.TrackingNumber, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	lines, err := r.listLines(id)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return &s, nil
}

func (r *ShipmentRepo) listLines(shipmentID string) ([]*entity.ShipmentLineItem, error) {
	query := `SELECT ` + shipmentLineColumns + ` FROM shipment_line_items WHERE shipment_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list shipment lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.ShipmentLineItem
	for rows.Next() {
		var l entity.ShipmentLineItem
		if err := rows.Scan(&l.ID, &l.ShipmentID, &l.OrderLineID, &l.ProductID,
			&l.InventoryRecordID, &l.Quantity, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListByOrder lista despachos de una orden, más reciente primero.
func (r *ShipmentRepo) ListByOrder(orderID string) ([]*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE order_id = $1 ORDER BY shipped_at DESC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(&s.ID, &s.ShipmentNumber, &s.OrderID, &s.ShippedBy,
			&s.ShippedAt, &s.CarrierName, &s.TrackingNumber, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
