package entity

import "time"

// ProductLot identifica un lote rastreable de un producto: (ProductID,
// LotNumber) es único a nivel de base de datos. Inmutable una vez creado,
// salvo completar la fecha de vencimiento si llegó vacía.
type ProductLot struct {
	ID             string
	ProductID      string
	LotNumber      string
	ExpirationDate *time.Time
	CreatedAt      time.Time
}
