package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// StockTakeUseCase implementa el conciliador de conteos físicos. Contar y
// conciliar son pasos separados: los conteos se pueden corregir mientras el
// conteo está InProgress y solo Process toca el libro de inventario.
type StockTakeUseCase struct {
	txRunner      TxRunner
	stockTakeRepo repository.StockTakeRepository
	inventoryRepo repository.InventoryRepository
}

// NewStockTakeUseCase construye el caso de uso.
func NewStockTakeUseCase(
	txRunner TxRunner,
	stockTakeRepo repository.StockTakeRepository,
	inventoryRepo repository.InventoryRepository,
) *StockTakeUseCase {
	return &StockTakeUseCase{
		txRunner:      txRunner,
		stockTakeRepo: stockTakeRepo,
		inventoryRepo: inventoryRepo,
	}
}

// InitiateInput filtros y datos para iniciar un conteo.
type InitiateInput struct {
	ProductID  string // opcional: limitar a un producto
	LocationID string // opcional: limitar a una ubicación
	Notes      string
	UserID     string
}

// Initiate crea el conteo en Planning y toma la foto: un ítem por cada fila
// de saldo que coincida con los filtros, con el on hand actual como cantidad
// esperada. Foto e inserción de ítems van en una sola transacción.
func (uc *StockTakeUseCase) Initiate(ctx context.Context, in InitiateInput) (*entity.StockTake, error) {
	now := time.Now()
	stockTake := &entity.StockTake{
		Number:      fmt.Sprintf("ST-%s", uuid.New().String()[:8]),
		Status:      entity.StockTakeStatusPlanning,
		InitiatedBy: in.UserID,
		StartedAt:   now,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		if err := r.StockTakes.Create(stockTake); err != nil {
			return err
		}
		records, err := r.Inventory.List(repository.InventoryFilter{
			ProductID:  in.ProductID,
			LocationID: in.LocationID,
		})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return domain.ErrNotFound
		}
		items := make([]*entity.StockTakeItem, 0, len(records))
		for _, rec := range records {
			items = append(items, &entity.StockTakeItem{
				StockTakeID:       stockTake.ID,
				InventoryRecordID: rec.ID,
				ProductID:         rec.ProductID,
				LotID:             rec.LotID,
				LocationID:        rec.LocationID,
				ExpectedQuantity:  rec.QuantityOnHand,
				CreatedAt:         now,
			})
		}
		if err := r.StockTakes.CreateItems(items); err != nil {
			return err
		}
		stockTake.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stockTake, nil
}

// Start transiciona el conteo de Planning a InProgress.
func (uc *StockTakeUseCase) Start(ctx context.Context, stockTakeID string) error {
	return uc.transition(ctx, stockTakeID, entity.StockTakeStatusInProgress)
}

// Verify transiciona el conteo de Completed a Verified.
func (uc *StockTakeUseCase) Verify(ctx context.Context, stockTakeID string) error {
	return uc.transition(ctx, stockTakeID, entity.StockTakeStatusVerified)
}

// Cancel cancela un conteo en Planning o InProgress.
func (uc *StockTakeUseCase) Cancel(ctx context.Context, stockTakeID string) error {
	return uc.transition(ctx, stockTakeID, entity.StockTakeStatusCancelled)
}

// transition valida la máquina de estados sobre lo leído y delega la carrera
// al UPDATE: el WHERE exige el estado desde el que se validó, así que si otra
// transacción movió el conteo entre la lectura y el UPDATE sale ErrConflict.
func (uc *StockTakeUseCase) transition(ctx context.Context, stockTakeID, next string) error {
	stockTake, err := uc.stockTakeRepo.GetByID(stockTakeID)
	if err != nil {
		return err
	}
	if stockTake == nil {
		return domain.ErrNotFound
	}
	if !stockTake.CanTransitionTo(next) {
		return domain.ErrConflict
	}
	return uc.stockTakeRepo.UpdateStatus(stockTakeID, next, nil, stockTake.Status)
}

// SubmitCountInput un conteo físico sobre un ítem.
type SubmitCountInput struct {
	CountedQuantity      int64
	ReasonForDiscrepancy string
	UserID               string
}

// SubmitCount registra la cantidad contada de un ítem. Solo es válido
// mientras el conteo padre está InProgress y no toca el libro: la
// conciliación ocurre en Process. Reenviar un conteo corrige el anterior.
func (uc *StockTakeUseCase) SubmitCount(ctx context.Context, itemID string, in SubmitCountInput) error {
	if in.CountedQuantity < 0 {
		return domain.ErrInvalidQuantity
	}
	item, err := uc.stockTakeRepo.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	stockTake, err := uc.stockTakeRepo.GetByID(item.StockTakeID)
	if err != nil {
		return err
	}
	if stockTake == nil {
		return domain.ErrNotFound
	}
	if stockTake.Status != entity.StockTakeStatusInProgress {
		return domain.ErrConflict
	}
	return uc.stockTakeRepo.UpdateItemCount(itemID, repository.StockTakeItemUpdate{
		CountedQuantity:      in.CountedQuantity,
		CountedBy:            in.UserID,
		CountedAt:            time.Now(),
		ReasonForDiscrepancy: in.ReasonForDiscrepancy,
	})
}

// Process concilia el conteo contra el libro: para cada ítem con discrepancia
// sobrescribe el on hand con lo contado (el conteo físico es la verdad, no un
// delta) y appendea un movimiento Adjustment cuya dirección codifica faltante
// o sobrante. Válido una sola vez, desde InProgress; todo en una transacción.
// Un ítem cuya fila de saldo ya no existe aborta el procesamiento completo.
func (uc *StockTakeUseCase) Process(ctx context.Context, stockTakeID, userID string) (*entity.StockTake, error) {
	now := time.Now()
	var processed *entity.StockTake
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		stockTake, err := r.StockTakes.GetByIDForUpdate(stockTakeID)
		if err != nil {
			return err
		}
		if stockTake == nil {
			return domain.ErrNotFound
		}
		if stockTake.Status != entity.StockTakeStatusInProgress {
			return domain.ErrConflict
		}
		for _, item := range stockTake.Items {
			// Ítem sin conteo registrado: se cuenta como cero unidades
			// encontradas, igual que el sistema de conteo en papel.
			counted := int64(0)
			if item.CountedQuantity != nil {
				counted = *item.CountedQuantity
			}

			rec, err := r.Inventory.GetByIDForUpdate(item.InventoryRecordID)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("conteo %s ítem %s: fila de saldo %s: %w",
					stockTake.Number, item.ID, item.InventoryRecordID, domain.ErrMissingInventoryRecord)
			}

			discrepancy := item.ExpectedQuantity - counted
			if discrepancy == 0 {
				rec.LastCountedAt = &now
				rec.UpdatedAt = now
				if err := r.Inventory.UpdateQuantities(rec); err != nil {
					return err
				}
				continue
			}

			fromSet, _, quantity := domaininv.AdjustmentDirection(discrepancy)
			reason := item.ReasonForDiscrepancy
			if reason == "" {
				reason = "ajuste por conteo físico"
			}
			mov := &entity.StockMovement{
				Type:          entity.MovementTypeAdjustment,
				ProductID:     item.ProductID,
				LotID:         item.LotID,
				Quantity:      quantity,
				Reason:        reason,
				ReferenceType: entity.ReferenceTypeStockTake,
				ReferenceID:   &stockTake.ID,
				CreatedBy:     userID,
				OccurredAt:    now,
			}
			if fromSet {
				mov.FromLocationID = &item.LocationID
			} else {
				mov.ToLocationID = &item.LocationID
			}

			// Sobrescritura absoluta expresada como delta sobre la fila ya
			// bloqueada: counted - onHand. Si lo contado queda por debajo de
			// lo asignado, el invariante aborta la conciliación completa.
			rec.LastCountedAt = &now
			if err := rec.ApplyDelta(counted-rec.QuantityOnHand, 0); err != nil {
				return err
			}
			rec.UpdatedAt = now
			if err := r.Inventory.UpdateQuantities(rec); err != nil {
				return err
			}
			if err := r.Movements.Create(mov); err != nil {
				return err
			}
			if err := r.StockTakes.SetItemAdjustment(item.ID, mov.ID); err != nil {
				return err
			}
			item.AdjustmentMovementID = &mov.ID
		}
		completedAt := now
		if err := r.StockTakes.UpdateStatus(stockTake.ID, entity.StockTakeStatusCompleted, &completedAt, entity.StockTakeStatusInProgress); err != nil {
			return err
		}
		stockTake.Status = entity.StockTakeStatusCompleted
		stockTake.CompletedAt = &completedAt
		processed = stockTake
		return nil
	})
	if err != nil {
		return nil, err
	}
	return processed, nil
}

// GetByID devuelve un conteo con sus ítems.
func (uc *StockTakeUseCase) GetByID(ctx context.Context, stockTakeID string) (*entity.StockTake, error) {
	stockTake, err := uc.stockTakeRepo.GetByID(stockTakeID)
	if err != nil {
		return nil, err
	}
	if stockTake == nil {
		return nil, domain.ErrNotFound
	}
	return stockTake, nil
}

// List lista conteos con filtros.
func (uc *StockTakeUseCase) List(ctx context.Context, filter repository.StockTakeFilter) ([]*entity.StockTake, error) {
	return uc.stockTakeRepo.List(filter)
}
