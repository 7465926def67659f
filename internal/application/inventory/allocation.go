package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// AllocationResult resultado de una asignación: cuánto se reservó y cuánto
// quedó sin cubrir. El caller decide si un faltante es aceptable (asignación
// parcial) o debe revertirse completo.
type AllocationResult struct {
	Allocated int64
	Shortfall int64
}

// AllocationUseCase implementa el motor de asignación y traslado. Las
// asignaciones son reservas a nivel de producto (no se fijan a una ubicación
// hasta el despacho), exactamente la política del sistema original; los
// traslados sí son entre ubicaciones y nunca tocan lo asignado.
type AllocationUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewAllocationUseCase construye el caso de uso.
func NewAllocationUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *AllocationUseCase {
	return &AllocationUseCase{txRunner: txRunner, productRepo: productRepo}
}

// Allocate reserva hasta needed unidades del producto recorriendo las filas
// de saldo en orden FIFO (stock más antiguo primero). Las filas quedan
// bloqueadas durante el recorrido, así dos asignaciones concurrentes sobre el
// mismo producto se serializan y nunca reservan más de lo disponible.
func (uc *AllocationUseCase) Allocate(ctx context.Context, productID string, needed int64) (AllocationResult, error) {
	var result AllocationResult
	if needed <= 0 {
		return result, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return result, err
	}
	if product == nil {
		return result, domain.ErrNotFound
	}
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		result, err = allocateInTx(r, productID, needed, time.Now())
		return err
	})
	return result, err
}

// allocateInTx ejecuta la asignación dentro de la transacción del caller.
// Cada producto es un paso atómico independiente dentro de la tx que lo
// envuelve (una orden con varios productos no es todo-o-nada por diseño).
func allocateInTx(r TxRepos, productID string, needed int64, now time.Time) (AllocationResult, error) {
	rows, err := r.Inventory.ListAvailableByProductForUpdate(productID)
	if err != nil {
		return AllocationResult{}, err
	}
	plan := domaininv.PlanAllocation(rows, needed)
	byID := make(map[string]*entity.InventoryRecord, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	for _, alloc := range plan.Rows {
		row := byID[alloc.RecordID]
		if err := row.ApplyDelta(0, alloc.Quantity); err != nil {
			return AllocationResult{}, err
		}
		row.UpdatedAt = now
		if err := r.Inventory.UpdateQuantities(row); err != nil {
			return AllocationResult{}, err
		}
	}
	return AllocationResult{Allocated: plan.Allocated, Shortfall: plan.Shortfall}, nil
}

// Deallocate libera quantity unidades reservadas en una fila de saldo.
// Falla con ErrInvalidQuantity si dejaría lo asignado negativo.
func (uc *AllocationUseCase) Deallocate(ctx context.Context, recordID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		rec, err := r.Inventory.GetByIDForUpdate(recordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("fila de saldo %s: %w", recordID, domain.ErrMissingInventoryRecord)
		}
		if rec.QuantityAllocated < quantity {
			return domain.ErrInvalidQuantity
		}
		if err := rec.ApplyDelta(0, -quantity); err != nil {
			return err
		}
		rec.UpdatedAt = time.Now()
		return r.Inventory.UpdateQuantities(rec)
	})
}

// TransferInput datos de un traslado entre ubicaciones.
type TransferInput struct {
	ProductID      string
	LotID          *string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	Reason         string
	UserID         string
}

// Transfer mueve stock entre dos ubicaciones en una transacción: verifica
// on hand suficiente en origen, descuenta, encuentra-o-crea la fila destino,
// suma, y appendea un único movimiento Transfer con ambas ubicaciones.
// Nunca toca lo asignado de ninguna de las dos filas.
func (uc *AllocationUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.StockMovement, error) {
	if in.Quantity <= 0 || in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	mov := &entity.StockMovement{
		Type:           entity.MovementTypeTransfer,
		ProductID:      in.ProductID,
		LotID:          in.LotID,
		FromLocationID: &in.FromLocationID,
		ToLocationID:   &in.ToLocationID,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		ReferenceType:  entity.ReferenceTypeManual,
		CreatedBy:      in.UserID,
		OccurredAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		source, err := r.Inventory.GetForUpdate(in.ProductID, in.LotID, in.FromLocationID)
		if err != nil {
			return err
		}
		if source == nil {
			return fmt.Errorf("producto %s ubicación %s: %w",
				in.ProductID, in.FromLocationID, domain.ErrMissingInventoryRecord)
		}
		if source.QuantityOnHand < in.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := source.ApplyDelta(-in.Quantity, 0); err != nil {
			return err
		}
		source.UpdatedAt = now
		if err := r.Inventory.UpdateQuantities(source); err != nil {
			return err
		}
		// El destino se crea con valores por defecto si es la primera entrada;
		// el movimiento se appendea una sola vez, con ambas ubicaciones.
		_, err = applyDelta(r, deltaInput{
			ProductID:   in.ProductID,
			LotID:       in.LotID,
			LocationID:  in.ToLocationID,
			OnHandDelta: in.Quantity,
			Movement:    mov,
			Now:         now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
