package inventory

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// QueryUseCase expone las consultas de solo lectura del libro: saldos con
// disponible derivado y el historial de movimientos. No abre transacciones.
type QueryUseCase struct {
	inventoryRepo repository.InventoryRepository
	movementRepo  repository.StockMovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(inventoryRepo repository.InventoryRepository, movementRepo repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{inventoryRepo: inventoryRepo, movementRepo: movementRepo}
}

// Balance una fila de saldo con el disponible ya derivado.
type Balance struct {
	Record    *entity.InventoryRecord
	Available int64
}

// GetBalance devuelve el saldo de una llave natural concreta. Una llave sin
// fila es un saldo cero, no un error.
func (uc *QueryUseCase) GetBalance(ctx context.Context, productID string, lotID *string, locationID string) (Balance, error) {
	rec, err := uc.inventoryRepo.Get(productID, lotID, locationID)
	if err != nil {
		return Balance{}, err
	}
	if rec == nil {
		return Balance{Record: &entity.InventoryRecord{
			ProductID:  productID,
			LotID:      lotID,
			LocationID: locationID,
		}}, nil
	}
	return Balance{Record: rec, Available: rec.Available()}, nil
}

// ListBalances lista filas de saldo con filtros.
func (uc *QueryUseCase) ListBalances(ctx context.Context, filter repository.InventoryFilter) ([]Balance, error) {
	records, err := uc.inventoryRepo.List(filter)
	if err != nil {
		return nil, err
	}
	balances := make([]Balance, 0, len(records))
	for _, rec := range records {
		balances = append(balances, Balance{Record: rec, Available: rec.Available()})
	}
	return balances, nil
}

// GetMovement devuelve un movimiento por ID.
func (uc *QueryUseCase) GetMovement(ctx context.Context, id string) (*entity.StockMovement, error) {
	mov, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// ListMovements lista el historial de movimientos, más reciente primero.
func (uc *QueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return uc.movementRepo.List(filter)
}
