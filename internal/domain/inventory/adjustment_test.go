package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
)

func TestAdjustmentDirection_Faltante(t *testing.T) {
	fromSet, toSet, quantity := inventory.AdjustmentDirection(5)

	assert.True(t, fromSet, "el faltante sale de la ubicación")
	assert.False(t, toSet)
	assert.Equal(t, int64(5), quantity)
}

func TestAdjustmentDirection_Sobrante(t *testing.T) {
	fromSet, toSet, quantity := inventory.AdjustmentDirection(-3)

	assert.False(t, fromSet)
	assert.True(t, toSet, "el sobrante entra a la ubicación")
	assert.Equal(t, int64(3), quantity, "la cantidad es siempre el valor absoluto")
}

func TestAdjustmentDirection_SinDiscrepancia(t *testing.T) {
	fromSet, toSet, quantity := inventory.AdjustmentDirection(0)

	assert.False(t, fromSet)
	assert.False(t, toSet)
	assert.Equal(t, int64(0), quantity)
}
