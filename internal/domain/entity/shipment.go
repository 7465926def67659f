package entity

import "time"

// Shipment representa un despacho físico de una orden de salida. Se crea al
// despachar: cada línea libera la asignación y descuenta on hand en la
// ubicación origen, dejando un movimiento Outbound por línea.
type Shipment struct {
	ID             string
	ShipmentNumber string // único
	OrderID        string
	ShippedBy      string // UserID
	ShippedAt      time.Time
	CarrierName    string
	TrackingNumber string
	CreatedAt      time.Time

	Lines []*ShipmentLineItem
}

// ShipmentLineItem es una línea despachada: cuánto salió de qué fila de saldo.
type ShipmentLineItem struct {
	ID                string
	ShipmentID        string
	OrderLineID       string
	ProductID         string
	InventoryRecordID string
	Quantity          int64
	CreatedAt         time.Time
}
