package inventory

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// RowAllocation es la porción de demanda que el plan asigna a una fila de saldo.
type RowAllocation struct {
	RecordID string
	Quantity int64
}

// AllocationPlan es el resultado puro del recorrido FIFO: cuánto se asigna a
// cada fila y cuánto quedó sin cubrir.
type AllocationPlan struct {
	Rows      []RowAllocation
	Allocated int64
	Shortfall int64
}

// PlanAllocation recorre las filas de saldo en el orden recibido (el caller
// las trae FIFO: created_at ASC, id ASC) asignando min(restante, disponible)
// en cada una hasta agotar la necesidad o las filas. Es determinista: mismas
// filas y misma necesidad producen siempre el mismo plan.
// No muta las filas; el caller aplica los incrementos bajo bloqueo de fila.
func PlanAllocation(rows []*entity.InventoryRecord, needed int64) AllocationPlan {
	plan := AllocationPlan{}
	remaining := needed
	for _, row := range rows {
		if remaining == 0 {
			break
		}
		available := row.Available()
		if available <= 0 {
			continue
		}
		take := available
		if remaining < take {
			take = remaining
		}
		plan.Rows = append(plan.Rows, RowAllocation{RecordID: row.ID, Quantity: take})
		plan.Allocated += take
		remaining -= take
	}
	plan.Shortfall = remaining
	return plan
}
