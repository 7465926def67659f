package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// MovementFilter filtros para consultar el log de movimientos.
type MovementFilter struct {
	ProductID     string
	LocationID    string // coincide con origen o destino
	ReferenceType string
	ReferenceID   string
	Limit         int
	Offset        int
}

// StockMovementRepository es el puerto del log de movimientos: solo inserta y
// lee, nunca actualiza ni borra. No toca filas de saldo; la escritura del log
// y la del saldo conviven en la transacción del caller.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
