package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// OrderFilter filtros para listar órdenes de salida.
type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

// OutboundOrderRepository puerto de persistencia para órdenes de salida.
type OutboundOrderRepository interface {
	Create(order *entity.OutboundOrder) error
	// GetByID carga la orden con sus líneas.
	GetByID(id string) (*entity.OutboundOrder, error)
	// GetByIDForUpdate carga la orden con sus líneas y bloquea la cabecera,
	// para serializar Allocate y Ship contra envíos concurrentes.
	GetByIDForUpdate(id string) (*entity.OutboundOrder, error)
	AddLine(line *entity.OutboundOrderLineItem) error
	// UpdateStatus cambia el estado solo si el actual está en from; devuelve
	// ErrConflict si otra transacción lo movió primero.
	UpdateStatus(id, status string, from ...string) error
	// UpdateLineQuantities persiste quantity_allocated y quantity_shipped.
	UpdateLineQuantities(line *entity.OutboundOrderLineItem) error
	List(filter OrderFilter) ([]*entity.OutboundOrder, error)
}

// ShipmentRepository puerto de persistencia para despachos.
type ShipmentRepository interface {
	// Create persiste el despacho con sus líneas.
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	ListByOrder(orderID string) ([]*entity.Shipment, error)
}
