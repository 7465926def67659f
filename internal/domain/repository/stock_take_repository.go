package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// StockTakeFilter filtros para listar conteos.
type StockTakeFilter struct {
	Status string
	Limit  int
	Offset int
}

// StockTakeItemUpdate datos de un conteo registrado sobre un ítem.
type StockTakeItemUpdate struct {
	CountedQuantity      int64
	CountedBy            string
	CountedAt            time.Time
	ReasonForDiscrepancy string
}

// StockTakeRepository puerto de persistencia para conteos físicos.
type StockTakeRepository interface {
	Create(stockTake *entity.StockTake) error
	// GetByID carga el conteo con sus ítems.
	GetByID(id string) (*entity.StockTake, error)
	GetByIDForUpdate(id string) (*entity.StockTake, error)
	// UpdateStatus cambia el estado solo si el actual está en from; devuelve
	// ErrConflict si otra transacción lo movió primero.
	UpdateStatus(id, status string, completedAt *time.Time, from ...string) error
	List(filter StockTakeFilter) ([]*entity.StockTake, error)

	CreateItems(items []*entity.StockTakeItem) error
	GetItemByID(itemID string) (*entity.StockTakeItem, error)
	UpdateItemCount(itemID string, update StockTakeItemUpdate) error
	// SetItemAdjustment enlaza el movimiento Adjustment producido al procesar.
	SetItemAdjustment(itemID, movementID string) error
}
