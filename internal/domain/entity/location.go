package entity

import "time"

// Tipos de ubicación dentro de la bodega.
const (
	LocationTypeReceiving  = "Receiving"
	LocationTypeStorage    = "Storage"
	LocationTypePicking    = "Picking"
	LocationTypeShipping   = "Shipping"
	LocationTypeQuarantine = "Quarantine"
)

// WarehouseLocation representa una ubicación física de la bodega.
type WarehouseLocation struct {
	ID        string
	Code      string // único
	Name      string
	Type      string // Receiving, Storage, Picking, Shipping, Quarantine
	Capacity  *int64
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
