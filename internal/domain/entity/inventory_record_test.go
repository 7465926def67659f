package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de la fila de saldo: 0 <= asignado <= on hand
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryRecord_ApplyDelta_EntradaSimple(t *testing.T) {
	rec := &entity.InventoryRecord{QuantityOnHand: 10, QuantityAllocated: 0}

	require.NoError(t, rec.ApplyDelta(5, 0), "sumar on hand debe respetar el invariante")
	assert.Equal(t, int64(15), rec.QuantityOnHand)
	assert.Equal(t, int64(15), rec.Available(), "sin reservas el disponible es todo el on hand")
}

func TestInventoryRecord_ApplyDelta_ReservaYDisponible(t *testing.T) {
	rec := &entity.InventoryRecord{QuantityOnHand: 10, QuantityAllocated: 0}

	require.NoError(t, rec.ApplyDelta(0, 7))
	assert.Equal(t, int64(3), rec.Available(), "disponible = on hand - asignado")
}

func TestInventoryRecord_ApplyDelta_OnHandNegativo(t *testing.T) {
	rec := &entity.InventoryRecord{QuantityOnHand: 4, QuantityAllocated: 0}

	err := rec.ApplyDelta(-5, 0)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation,
		"el on hand nunca puede quedar negativo")
}

func TestInventoryRecord_ApplyDelta_AsignadoMayorQueOnHand(t *testing.T) {
	rec := &entity.InventoryRecord{QuantityOnHand: 5, QuantityAllocated: 2}

	err := rec.ApplyDelta(0, 4)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation,
		"no se puede reservar más de lo que hay en la fila")
}

func TestInventoryRecord_ApplyDelta_AsignadoNegativo(t *testing.T) {
	rec := &entity.InventoryRecord{QuantityOnHand: 5, QuantityAllocated: 1}

	err := rec.ApplyDelta(0, -2)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation,
		"liberar más de lo reservado debe violar el invariante")
}

func TestInventoryRecord_ApplyDelta_SalidaDeLoAsignado(t *testing.T) {
	// Despacho: descuenta on hand y asignado en la misma operación.
	rec := &entity.InventoryRecord{QuantityOnHand: 10, QuantityAllocated: 6}

	require.NoError(t, rec.ApplyDelta(-6, -6))
	assert.Equal(t, int64(4), rec.QuantityOnHand)
	assert.Equal(t, int64(0), rec.QuantityAllocated)
}

func TestInventoryRecord_CheckInvariant_FilaEnCero(t *testing.T) {
	// La fila llevada a cero sigue siendo válida: nunca se borra.
	rec := &entity.InventoryRecord{QuantityOnHand: 0, QuantityAllocated: 0}
	assert.NoError(t, rec.CheckInvariant())
}
