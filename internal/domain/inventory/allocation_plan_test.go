package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
)

func row(id string, onHand, allocated int64) *entity.InventoryRecord {
	return &entity.InventoryRecord{ID: id, QuantityOnHand: onHand, QuantityAllocated: allocated}
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan de asignación FIFO
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanAllocation_CubreConLaPrimeraFila(t *testing.T) {
	rows := []*entity.InventoryRecord{row("a", 10, 0), row("b", 10, 0)}

	plan := inventory.PlanAllocation(rows, 6)

	require.Len(t, plan.Rows, 1, "la primera fila alcanza, no debe tocar la segunda")
	assert.Equal(t, "a", plan.Rows[0].RecordID)
	assert.Equal(t, int64(6), plan.Rows[0].Quantity)
	assert.Equal(t, int64(6), plan.Allocated)
	assert.Equal(t, int64(0), plan.Shortfall)
}

func TestPlanAllocation_RepartteEntreVariasFilas(t *testing.T) {
	// El orden de llegada es el orden FIFO: el stock más antiguo primero.
	rows := []*entity.InventoryRecord{row("viejo", 5, 0), row("medio", 5, 2), row("nuevo", 10, 0)}

	plan := inventory.PlanAllocation(rows, 9)

	require.Len(t, plan.Rows, 3)
	assert.Equal(t, int64(5), plan.Rows[0].Quantity, "agota la fila más antigua primero")
	assert.Equal(t, int64(3), plan.Rows[1].Quantity, "solo el disponible: 5 - 2 reservadas")
	assert.Equal(t, int64(1), plan.Rows[2].Quantity)
	assert.Equal(t, int64(9), plan.Allocated)
	assert.Equal(t, int64(0), plan.Shortfall)
}

func TestPlanAllocation_FaltanteParcial(t *testing.T) {
	rows := []*entity.InventoryRecord{row("a", 3, 1), row("b", 2, 0)}

	plan := inventory.PlanAllocation(rows, 10)

	assert.Equal(t, int64(4), plan.Allocated, "2 disponibles en a + 2 en b")
	assert.Equal(t, int64(6), plan.Shortfall, "lo no cubierto queda como faltante")
}

func TestPlanAllocation_IgnoraFilasSinDisponible(t *testing.T) {
	rows := []*entity.InventoryRecord{row("lleno", 5, 5), row("vacio", 0, 0), row("libre", 4, 0)}

	plan := inventory.PlanAllocation(rows, 4)

	require.Len(t, plan.Rows, 1)
	assert.Equal(t, "libre", plan.Rows[0].RecordID)
	assert.Equal(t, int64(0), plan.Shortfall)
}

func TestPlanAllocation_SinFilas(t *testing.T) {
	plan := inventory.PlanAllocation(nil, 5)

	assert.Empty(t, plan.Rows)
	assert.Equal(t, int64(0), plan.Allocated)
	assert.Equal(t, int64(5), plan.Shortfall)
}

func TestPlanAllocation_EsDeterminista(t *testing.T) {
	rows := []*entity.InventoryRecord{row("a", 7, 3), row("b", 9, 0)}

	first := inventory.PlanAllocation(rows, 8)
	second := inventory.PlanAllocation(rows, 8)

	assert.Equal(t, first, second, "mismas filas y misma necesidad, mismo plan")
}
