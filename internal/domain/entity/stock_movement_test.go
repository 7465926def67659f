package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

// El efecto sobre una ubicación lo llevan Type y origen/destino, nunca el
// signo de Quantity.
func TestStockMovement_OnHandEffect(t *testing.T) {
	inbound := &entity.StockMovement{
		Type:         entity.MovementTypeInbound,
		ToLocationID: strPtr("loc-a"),
		Quantity:     10,
	}
	assert.Equal(t, int64(10), inbound.OnHandEffect("loc-a"), "entrada suma en destino")
	assert.Equal(t, int64(0), inbound.OnHandEffect("loc-b"), "no toca otras ubicaciones")

	outbound := &entity.StockMovement{
		Type:           entity.MovementTypeOutbound,
		FromLocationID: strPtr("loc-a"),
		Quantity:       4,
	}
	assert.Equal(t, int64(-4), outbound.OnHandEffect("loc-a"), "salida resta en origen")

	transfer := &entity.StockMovement{
		Type:           entity.MovementTypeTransfer,
		FromLocationID: strPtr("loc-a"),
		ToLocationID:   strPtr("loc-b"),
		Quantity:       3,
	}
	assert.Equal(t, int64(-3), transfer.OnHandEffect("loc-a"), "el traslado resta en origen")
	assert.Equal(t, int64(3), transfer.OnHandEffect("loc-b"), "y suma en destino")
	assert.Equal(t, int64(0), transfer.OnHandEffect("loc-c"))
}
