package entity

import "time"

// Estados de un conteo físico (stock take).
// Transiciones válidas: Planning → InProgress → Completed → Verified.
// Cancelled es alcanzable desde Planning o InProgress.
const (
	StockTakeStatusPlanning   = "Planning"
	StockTakeStatusInProgress = "InProgress"
	StockTakeStatusCompleted  = "Completed"
	StockTakeStatusVerified   = "Verified"
	StockTakeStatusCancelled  = "Cancelled"
)

// StockTake representa un conteo físico de inventario. Al iniciarse toma una
// foto del on hand actual como cantidad esperada de cada ítem; al procesarse
// (una sola vez, desde InProgress) sobrescribe el on hand con lo contado y
// emite movimientos Adjustment por cada discrepancia.
type StockTake struct {
	ID          string
	Number      string // único, ST-...
	Status      string
	InitiatedBy string // UserID
	StartedAt   time.Time
	CompletedAt *time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []*StockTakeItem
}

// CanTransitionTo valida la máquina de estados del conteo.
func (st *StockTake) CanTransitionTo(next string) bool {
	switch st.Status {
	case StockTakeStatusPlanning:
		return next == StockTakeStatusInProgress || next == StockTakeStatusCancelled
	case StockTakeStatusInProgress:
		return next == StockTakeStatusCompleted || next == StockTakeStatusCancelled
	case StockTakeStatusCompleted:
		return next == StockTakeStatusVerified
	default:
		return false
	}
}

// StockTakeItem es un ítem de conteo: una fila de saldo con su cantidad
// esperada (foto al iniciar) y la contada. Discrepancy = esperada - contada.
// AdjustmentMovementID enlaza el movimiento Adjustment que produjo el
// procesamiento, para trazabilidad; nil si no hubo discrepancia.
type StockTakeItem struct {
	ID                   string
	StockTakeID          string
	InventoryRecordID    string
	ProductID            string
	LotID                *string
	LocationID           string
	ExpectedQuantity     int64
	CountedQuantity      *int64
	CountedBy            *string // UserID
	CountedAt            *time.Time
	ReasonForDiscrepancy string
	AdjustmentMovementID *string
	CreatedAt            time.Time
}

// Discrepancy devuelve esperada - contada (0 si aún no hay conteo).
func (i *StockTakeItem) Discrepancy() int64 {
	if i.CountedQuantity == nil {
		return 0
	}
	return i.ExpectedQuantity - *i.CountedQuantity
}
