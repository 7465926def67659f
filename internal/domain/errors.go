package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del libro de inventario. Cada operación del motor retorna uno de
// estos sentinelas y el caller decide cómo presentarlo (ver handlers HTTP).
var (
	// ErrInvariantViolation: la escritura dejaría una fila de saldo con
	// on_hand < allocated o cantidades negativas. Aborta la transacción, nunca
	// se recorta la cantidad en silencio.
	ErrInvariantViolation = errors.New("violación de invariante del inventario")

	// ErrInsufficientStock: traslado, salida o asignación excede lo disponible.
	// Es un rechazo de regla de negocio, no un error del sistema.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrInvalidQuantity: cantidad cero o negativa, o traslado con origen
	// igual a destino. Se rechaza antes de tocar la base de datos.
	ErrInvalidQuantity = errors.New("cantidad inválida")

	// ErrMissingInventoryRecord: la operación referencia una fila de saldo
	// (lote, ubicación) que no existe. Señal de inconsistencia aguas arriba;
	// se falla con los IDs involucrados en el mensaje envolvente.
	ErrMissingInventoryRecord = errors.New("registro de inventario inexistente")
)
