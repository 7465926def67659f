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

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

const receiptColumns = `id, supplier_id, status, po_number, carrier_name, tracking_number, received_by, received_at, notes, created_at, updated_at`
const receiptLineColumns = `id, receipt_id, product_id, location_id, expected_quantity, received_quantity, lot_number, expiration_date, created_at`

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste una recepción nueva (sin líneas; se agregan con AddLine).
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.SupplierID, receipt.Status, receipt.PONumber,
		receipt.CarrierName, receipt.TrackingNumber, receipt.ReceivedBy,
		receipt.ReceivedAt, receipt.Notes, receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetByID carga la recepción con sus líneas. Devuelve nil sin error si no existe.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate carga la recepción con sus líneas y bloquea la cabecera,
// para serializar Receive contra envíos concurrentes de la misma recepción.
func (r *ReceiptRepo) GetByIDForUpdate(id string) (*entity.Receipt, error) {
	return r.getByID(id, true)
}

func (r *ReceiptRepo) getByID(id string, forUpdate bool) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var rec entity.Receipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.SupplierID, &rec.Status, &rec.PONumber, &rec.CarrierName,
		&rec.TrackingNumber, &rec.ReceivedBy, &rec.ReceivedAt, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	lines, err := r.listLines(id)
	if err != nil {
		return nil, err
	}
	rec.Lines = lines
	return &rec, nil
}

func (r *ReceiptRepo) listLines(receiptID string) ([]*entity.ReceiptLineItem, error) {
	query := `SELECT ` + receiptLineColumns + ` FROM receipt_line_items WHERE receipt_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list receipt lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.ReceiptLineItem
	for rows.Next() {
		var l entity.ReceiptLineItem
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.ProductID, &l.LocationID,
			&l.ExpectedQuantity, &l.ReceivedQuantity, &l.LotNumber,
			&l.ExpirationDate, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// AddLine persiste una línea de recepción.
func (r *ReceiptRepo) AddLine(line *entity.ReceiptLineItem) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO receipt_line_items (` + receiptLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ReceiptID, line.ProductID, line.LocationID,
		line.ExpectedQuantity, line.ReceivedQuantity, line.LotNumber,
		line.ExpirationDate, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt line: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado de la recepción (y received_at si aplica).
// El WHERE exige el estado previo: cero filas afectadas significa que otra
// transacción lo movió primero y se devuelve ErrConflict.
func (r *ReceiptRepo) UpdateStatus(id, status string, receivedAt *time.Time, from ...string) error {
	query := `UPDATE receipts SET status = $2, received_at = COALESCE($3, received_at), updated_at = now() WHERE id = $1`
	args := []any{id, status, receivedAt}
	if len(from) > 0 {
		query += ` AND status = ANY($4)`
		args = append(args, from)
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update receipt status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List lista recepciones con filtros, más reciente primero. No carga líneas.
func (r *ReceiptRepo) List(filter repository.ReceiptFilter) ([]*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.SupplierID != "" {
		query += fmt.Sprintf(" AND supplier_id = $%d", pos)
		args = append(args, filter.SupplierID)
		pos++
	}
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
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		var rec entity.Receipt
		if err := rows.Scan(&rec.ID, &rec.SupplierID, &rec.Status, &rec.PONumber,
			&rec.CarrierName, &rec.TrackingNumber, &rec.ReceivedBy, &rec.ReceivedAt,
			&rec.Notes, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
