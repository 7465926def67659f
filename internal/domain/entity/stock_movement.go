package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeInbound    = "Inbound"    // entrada por recepción
	MovementTypeOutbound   = "Outbound"   // salida por despacho
	MovementTypeTransfer   = "Transfer"   // traslado entre ubicaciones
	MovementTypeAdjustment = "Adjustment" // ajuste por conteo físico
)

// Tipos de referencia que originan un movimiento.
const (
	ReferenceTypeReceipt   = "Receipt"
	ReferenceTypeShipment  = "Shipment"
	ReferenceTypeStockTake = "StockTake"
	ReferenceTypeManual    = "Manual"
)

// StockMovement es una entrada inmutable del log de movimientos: un cambio de
// cantidad y su causa. Quantity es siempre positiva; la dirección la llevan
// Type y las ubicaciones origen/destino, nunca el signo.
// La suma de efectos de los movimientos de una fila de saldo debe igualar su
// QuantityOnHand actual: el log es la autoridad de auditoría, la fila la
// autoridad de lectura rápida.
type StockMovement struct {
	ID             string
	Type           string // Inbound, Outbound, Transfer, Adjustment
	ProductID      string
	LotID          *string
	FromLocationID *string
	ToLocationID   *string
	Quantity       int64
	Reason         string // obligatorio en Adjustment
	ReferenceType  string // Receipt, Shipment, StockTake, Manual
	ReferenceID    *string
	CreatedBy      string // UserID que ejecutó la operación
	OccurredAt     time.Time
}

// OnHandEffect devuelve el efecto con signo del movimiento sobre la fila de
// saldo en la ubicación dada (+entrada, -salida, 0 si no la toca).
func (m *StockMovement) OnHandEffect(locationID string) int64 {
	var effect int64
	if m.ToLocationID != nil && *m.ToLocationID == locationID {
		effect += m.Quantity
	}
	if m.FromLocationID != nil && *m.FromLocationID == locationID {
		effect -= m.Quantity
	}
	return effect
}
