package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ProductLotRepository es el puerto de persistencia para lotes. La unicidad
// de (product_id, lot_number) la garantiza un constraint en la base de datos;
// Create devuelve domain.ErrDuplicate ante la violación para que el resolver
// relea en vez de crear dos lotes bajo concurrencia.
type ProductLotRepository interface {
	GetByID(id string) (*entity.ProductLot, error)
	GetByProductAndLot(productID, lotNumber string) (*entity.ProductLot, error)
	Create(lot *entity.ProductLot) error
	// SetExpiration completa la fecha de vencimiento de un lote creado sin ella.
	SetExpiration(id string, expiration time.Time) error
}
