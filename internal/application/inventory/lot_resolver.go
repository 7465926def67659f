package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// resolveLot encuentra o crea el lote (productID, lotNumber) al que aplica un
// movimiento. Devuelve nil cuando el stock va a granel (isBreakBulk o sin
// número de lote): las filas de saldo se llavean solo por producto.
//
// El find-or-create es seguro bajo concurrencia porque la unicidad la impone
// el constraint de BD: si dos recepciones del mismo lote compiten, la segunda
// inserción falla con ErrDuplicate y se relee la fila ganadora.
func resolveLot(lots repository.ProductLotRepository, productID, lotNumber string,
	expiration *time.Time, isBreakBulk bool, now time.Time) (*entity.ProductLot, error) {

	if isBreakBulk || lotNumber == "" {
		return nil, nil
	}

	lot, err := lots.GetByProductAndLot(productID, lotNumber)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		lot = &entity.ProductLot{
			ProductID:      productID,
			LotNumber:      lotNumber,
			ExpirationDate: expiration,
			CreatedAt:      now,
		}
		err = lots.Create(lot)
		if errors.Is(err, domain.ErrDuplicate) {
			// Perdimos la carrera: otro caller ya creó el lote.
			lot, err = lots.GetByProductAndLot(productID, lotNumber)
			if err == nil && lot == nil {
				err = fmt.Errorf("lote %s del producto %s: %w", lotNumber, productID, domain.ErrNotFound)
			}
		}
		if err != nil {
			return nil, err
		}
		return lot, nil
	}

	// Backfill de vencimiento: el lote es inmutable salvo completar la fecha.
	if lot.ExpirationDate == nil && expiration != nil {
		if err := lots.SetExpiration(lot.ID, *expiration); err != nil {
			return nil, err
		}
		lot.ExpirationDate = expiration
	}
	return lot, nil
}
