package entity

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

// InventoryRecord es la fila de saldo del libro de inventario: una por par
// (lote-o-producto, ubicación). LotID nil indica stock a granel (break-bulk),
// en cuyo caso la fila se identifica por (ProductID, LocationID).
// La fila nunca se borra, solo se lleva a cero, para que el historial de
// movimientos siga siendo atribuible.
type InventoryRecord struct {
	ID                string
	ProductID         string
	LotID             *string
	LocationID        string
	QuantityOnHand    int64
	QuantityAllocated int64
	LastCountedAt     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Available devuelve la cantidad disponible (on hand menos asignado).
// Se calcula siempre al leer; nunca se persiste como campo independiente.
func (r *InventoryRecord) Available() int64 {
	return r.QuantityOnHand - r.QuantityAllocated
}

// CheckInvariant valida 0 <= QuantityAllocated <= QuantityOnHand.
// Toda mutación del saldo pasa por aquí antes de persistir.
func (r *InventoryRecord) CheckInvariant() error {
	if r.QuantityOnHand < 0 || r.QuantityAllocated < 0 || r.QuantityAllocated > r.QuantityOnHand {
		return domain.ErrInvariantViolation
	}
	return nil
}

// ApplyDelta aplica deltas a on hand y asignado validando el invariante.
// No persiste; el repositorio escribe la fila resultante bajo FOR UPDATE.
func (r *InventoryRecord) ApplyDelta(onHandDelta, allocatedDelta int64) error {
	r.QuantityOnHand += onHandDelta
	r.QuantityAllocated += allocatedDelta
	return r.CheckInvariant()
}
