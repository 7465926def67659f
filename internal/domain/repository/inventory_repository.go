package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// InventoryFilter filtros para listar filas de saldo.
type InventoryFilter struct {
	ProductID  string
	LocationID string
	Limit      int
	Offset     int
}

// InventoryRepository es el puerto del Ledger Store: filas de saldo por
// (lote-o-producto, ubicación). Los métodos ForUpdate bloquean la fila
// (SELECT FOR UPDATE) y se usan solo dentro de una transacción; operaciones
// sobre pares distintos no se bloquean entre sí.
type InventoryRepository interface {
	GetByID(id string) (*entity.InventoryRecord, error)
	// Get busca la fila por su llave natural. lotID nil = break-bulk
	// (llave producto+ubicación). Devuelve nil sin error si no existe.
	Get(productID string, lotID *string, locationID string) (*entity.InventoryRecord, error)
	GetForUpdate(productID string, lotID *string, locationID string) (*entity.InventoryRecord, error)
	GetByIDForUpdate(id string) (*entity.InventoryRecord, error)
	// ListAvailableByProductForUpdate trae las filas del producto con
	// disponible > 0 en orden FIFO (created_at ASC, id ASC) y las bloquea.
	ListAvailableByProductForUpdate(productID string) ([]*entity.InventoryRecord, error)
	// ListAllocatedByProductForUpdate trae las filas del producto con
	// asignado > 0 en el mismo orden FIFO, bloqueadas (para despachos).
	ListAllocatedByProductForUpdate(productID string) ([]*entity.InventoryRecord, error)
	Create(record *entity.InventoryRecord) error
	// UpdateQuantities persiste on hand, asignado y last_counted_at de una
	// fila ya bloqueada. El invariante se valida en la entidad antes de llamar.
	UpdateQuantities(record *entity.InventoryRecord) error
	List(filter InventoryFilter) ([]*entity.InventoryRecord, error)
}
