package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	LotTracked  bool            `json:"lot_tracked"`
	UnitMeasure string          `json:"unit_measure"`
	Weight      decimal.Decimal `json:"weight"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest actualización parcial de producto. LotTracked no es
// editable: cambiar el esquema de saldo con stock existente lo corrompería.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitMeasure *string          `json:"unit_measure"`
	Weight      *decimal.Decimal `json:"weight"`
	Price       *decimal.Decimal `json:"price"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	LotTracked  bool            `json:"lot_tracked"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
	Weight      decimal.Decimal `json:"weight"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
