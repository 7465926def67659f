package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del conteo físico
// ──────────────────────────────────────────────────────────────────────────────

func TestStockTake_TransicionesValidas(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{entity.StockTakeStatusPlanning, entity.StockTakeStatusInProgress},
		{entity.StockTakeStatusPlanning, entity.StockTakeStatusCancelled},
		{entity.StockTakeStatusInProgress, entity.StockTakeStatusCompleted},
		{entity.StockTakeStatusInProgress, entity.StockTakeStatusCancelled},
		{entity.StockTakeStatusCompleted, entity.StockTakeStatusVerified},
	}
	for _, tc := range cases {
		st := &entity.StockTake{Status: tc.from}
		assert.True(t, st.CanTransitionTo(tc.to), "%s → %s debe ser válida", tc.from, tc.to)
	}
}

func TestStockTake_TransicionesInvalidas(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{entity.StockTakeStatusPlanning, entity.StockTakeStatusCompleted},
		{entity.StockTakeStatusPlanning, entity.StockTakeStatusVerified},
		{entity.StockTakeStatusInProgress, entity.StockTakeStatusVerified},
		{entity.StockTakeStatusCompleted, entity.StockTakeStatusCancelled},
		{entity.StockTakeStatusCompleted, entity.StockTakeStatusInProgress},
		{entity.StockTakeStatusVerified, entity.StockTakeStatusCancelled},
		{entity.StockTakeStatusCancelled, entity.StockTakeStatusInProgress},
	}
	for _, tc := range cases {
		st := &entity.StockTake{Status: tc.from}
		assert.False(t, st.CanTransitionTo(tc.to), "%s → %s no debe ser válida", tc.from, tc.to)
	}
}

func TestStockTakeItem_Discrepancy(t *testing.T) {
	counted := int64(7)
	item := &entity.StockTakeItem{ExpectedQuantity: 10, CountedQuantity: &counted}
	assert.Equal(t, int64(3), item.Discrepancy(), "faltante: esperada - contada > 0")

	over := int64(12)
	item = &entity.StockTakeItem{ExpectedQuantity: 10, CountedQuantity: &over}
	assert.Equal(t, int64(-2), item.Discrepancy(), "sobrante: esperada - contada < 0")

	item = &entity.StockTakeItem{ExpectedQuantity: 10}
	assert.Equal(t, int64(0), item.Discrepancy(), "sin conteo registrado no hay discrepancia")
}
