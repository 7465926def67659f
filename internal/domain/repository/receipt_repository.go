package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ReceiptFilter filtros para listar recepciones.
type ReceiptFilter struct {
	SupplierID string
	Status     string
	Limit      int
	Offset     int
}

// ReceiptRepository puerto de persistencia para recepciones y sus líneas.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	// GetByID carga la recepción con sus líneas.
	GetByID(id string) (*entity.Receipt, error)
	// GetByIDForUpdate carga la recepción con sus líneas y bloquea la
	// cabecera, para serializar Receive contra envíos concurrentes.
	GetByIDForUpdate(id string) (*entity.Receipt, error)
	AddLine(line *entity.ReceiptLineItem) error
	// UpdateStatus cambia el estado solo si el actual está en from; devuelve
	// ErrConflict si otra transacción lo movió primero.
	UpdateStatus(id, status string, receivedAt *time.Time, from ...string) error
	List(filter ReceiptFilter) ([]*entity.Receipt, error)
}
