package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo. LotTracked define el
// esquema de saldo: true = filas por (lote, ubicación); false = break-bulk,
// filas por (producto, ubicación). Los dos esquemas son excluyentes por
// producto para no contar stock dos veces.
type Product struct {
	ID          string
	Code        string // único
	Name        string
	Description string
	LotTracked  bool
	UnitMeasure string
	Weight      decimal.Decimal // kg
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
