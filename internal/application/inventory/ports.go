package inventory

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// El motor de inventario solo escribe a través de estos.
type TxRepos struct {
	Inventory  repository.InventoryRepository
	Movements  repository.StockMovementRepository
	Lots       repository.ProductLotRepository
	Receipts   repository.ReceiptRepository
	Orders     repository.OutboundOrderRepository
	Shipments  repository.ShipmentRepository
	StockTakes repository.StockTakeRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: si fn retorna error la
// transacción completa se revierte y ningún cambio parcial queda aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
