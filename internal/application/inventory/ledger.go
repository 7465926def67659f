package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// deltaInput describe una mutación de una fila de saldo: deltas sobre on hand
// y asignado, más el movimiento que la explica (nil cuando la mutación no
// cambia cantidades físicas, como una asignación).
type deltaInput struct {
	ProductID      string
	LotID          *string
	LocationID     string
	OnHandDelta    int64
	AllocatedDelta int64
	Movement       *entity.StockMovement
	Now            time.Time
}

// applyDelta es la primitiva de la que se compone todo el motor: carga (o
// crea) la fila de saldo bajo bloqueo de fila, aplica los deltas validando el
// invariante 0 <= asignado <= on hand, persiste la fila y appendea el
// movimiento en la misma transacción. Cualquier error aborta la tx del caller.
//
// La fila se crea con valores por defecto solo si no existe y OnHandDelta > 0
// (primera entrada a ese par lote/ubicación); en cualquier otro caso una fila
// ausente es domain.ErrMissingInventoryRecord.
func applyDelta(r TxRepos, in deltaInput) (*entity.InventoryRecord, error) {
	rec, err := r.Inventory.GetForUpdate(in.ProductID, in.LotID, in.LocationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		if in.OnHandDelta <= 0 {
			return nil, fmt.Errorf("producto %s ubicación %s: %w",
				in.ProductID, in.LocationID, domain.ErrMissingInventoryRecord)
		}
		rec = &entity.InventoryRecord{
			ProductID:  in.ProductID,
			LotID:      in.LotID,
			LocationID: in.LocationID,
			CreatedAt:  in.Now,
			UpdatedAt:  in.Now,
		}
		if err := rec.ApplyDelta(in.OnHandDelta, in.AllocatedDelta); err != nil {
			return nil, err
		}
		if err := r.Inventory.Create(rec); err != nil {
			return nil, err
		}
	} else {
		if err := rec.ApplyDelta(in.OnHandDelta, in.AllocatedDelta); err != nil {
			return nil, err
		}
		rec.UpdatedAt = in.Now
		if err := r.Inventory.UpdateQuantities(rec); err != nil {
			return nil, err
		}
	}
	if in.Movement != nil {
		if err := r.Movements.Create(in.Movement); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
