package entity

import "time"

// Estados de una orden de salida.
const (
	OrderStatusPending            = "Pending"
	OrderStatusProcessing         = "Processing"
	OrderStatusPartiallyAllocated = "PartiallyAllocated"
	OrderStatusShipped            = "Shipped"
	OrderStatusCancelled          = "Cancelled"
)

// OutboundOrder representa una orden de despacho a cliente. El flujo
// documental (direcciones, facturación) vive fuera; aquí solo importan las
// cantidades pedidas, asignadas y despachadas.
type OutboundOrder struct {
	ID          string
	OrderNumber string // único
	Status      string
	CustomerRef string
	CreatedBy   string // UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lines []*OutboundOrderLineItem
}

// OutboundOrderLineItem es una línea de orden: demanda de un producto.
// QuantityAllocated acumula lo reservado por el motor de asignación;
// QuantityShipped lo efectivamente despachado.
type OutboundOrderLineItem struct {
	ID                string
	OrderID           string
	ProductID         string
	QuantityOrdered   int64
	QuantityAllocated int64
	QuantityShipped   int64
	CreatedAt         time.Time
}
