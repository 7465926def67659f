package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Orden de salida: crear → asignar → despachar
// ──────────────────────────────────────────────────────────────────────────────

func TestOrder_CrearAsignarDespachar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedBalance("rec-viejo", "prod-granel", nil, "loc-a", 6, 0, base)
	f.seedBalance("rec-nuevo", "prod-granel", nil, "loc-b", 10, 0, base.Add(time.Hour))

	order, err := f.orderUC.CreateOrder(ctx, appinv.CreateOrderInput{
		CustomerRef: "CLI-042",
		UserID:      "user-1",
		Lines:       []appinv.OrderLineInput{{ProductID: "prod-granel", Quantity: 9}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)

	results, err := f.orderUC.AllocateOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(9), results[0].Allocated)
	assert.Equal(t, int64(0), results[0].Shortfall)

	stored, err := f.orderUC.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, stored.Status, "todo cubierto: Processing")
	assert.Equal(t, int64(9), stored.Lines[0].QuantityAllocated)

	shipment, err := f.orderUC.Ship(ctx, order.ID, appinv.ShipInput{
		CarrierName:    "Coordinadora",
		TrackingNumber: "TRK-555",
		UserID:         "user-1",
	})
	require.NoError(t, err)
	require.Len(t, shipment.Lines, 2, "el despacho sale de las dos filas en orden FIFO")
	assert.Equal(t, "rec-viejo", shipment.Lines[0].InventoryRecordID)
	assert.Equal(t, int64(6), shipment.Lines[0].Quantity)
	assert.Equal(t, "rec-nuevo", shipment.Lines[1].InventoryRecordID)
	assert.Equal(t, int64(3), shipment.Lines[1].Quantity)

	// El despacho libera la reserva y descuenta on hand en la misma operación.
	assert.Equal(t, int64(0), f.balance("rec-viejo").QuantityOnHand)
	assert.Equal(t, int64(0), f.balance("rec-viejo").QuantityAllocated)
	assert.Equal(t, int64(7), f.balance("rec-nuevo").QuantityOnHand)
	assert.Equal(t, int64(0), f.balance("rec-nuevo").QuantityAllocated)

	outbound := f.movementsOfType(entity.MovementTypeOutbound)
	require.Len(t, outbound, 2, "un movimiento Outbound por fila de saldo")
	for _, mov := range outbound {
		require.NotNil(t, mov.ReferenceID)
		assert.Equal(t, shipment.ID, *mov.ReferenceID)
		assert.Equal(t, entity.ReferenceTypeShipment, mov.ReferenceType)
		assert.Nil(t, mov.ToLocationID, "la salida no tiene destino")
	}

	final, err := f.orderUC.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, final.Status)
	assert.Equal(t, int64(9), final.Lines[0].QuantityShipped)
}

func TestOrder_AsignacionParcial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedBalance("rec-1", "prod-granel", nil, "loc-a", 4, 0, base)

	order, err := f.orderUC.CreateOrder(ctx, appinv.CreateOrderInput{
		UserID: "user-1",
		Lines:  []appinv.OrderLineInput{{ProductID: "prod-granel", Quantity: 10}},
	})
	require.NoError(t, err)

	results, err := f.orderUC.AllocateOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), results[0].Allocated)
	assert.Equal(t, int64(6), results[0].Shortfall)

	stored, err := f.orderUC.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPartiallyAllocated, stored.Status)

	// Llega más stock: una segunda asignación solo cubre lo pendiente.
	f.seedBalance("rec-2", "prod-granel", nil, "loc-b", 20, 0, base.Add(time.Hour))
	results, err = f.orderUC.AllocateOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), results[0].Allocated, "solo lo pendiente, no lo ya reservado")

	stored, err = f.orderUC.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, stored.Status)
	assert.Equal(t, int64(10), stored.Lines[0].QuantityAllocated)
}

func TestOrder_DespachoParcialNoCierraLaOrden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedBalance("rec-1", "prod-granel", nil, "loc-a", 4, 0, base)

	order, err := f.orderUC.CreateOrder(ctx, appinv.CreateOrderInput{
		UserID: "user-1",
		Lines:  []appinv.OrderLineInput{{ProductID: "prod-granel", Quantity: 10}},
	})
	require.NoError(t, err)
	_, err = f.orderUC.AllocateOrder(ctx, order.ID)
	require.NoError(t, err)

	shipment, err := f.orderUC.Ship(ctx, order.ID, appinv.ShipInput{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, shipment.Lines, 1)
	assert.Equal(t, int64(4), shipment.Lines[0].Quantity)

	stored, err := f.orderUC.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.NotEqual(t, entity.OrderStatusShipped, stored.Status,
		"con cantidades pendientes la orden no queda Shipped")
	assert.Equal(t, int64(4), stored.Lines[0].QuantityShipped)
	assert.Equal(t, int64(0), stored.Lines[0].QuantityAllocated)
}

func TestOrder_AgregarLineaSoloEnPending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedBalance("rec-1", "prod-granel", nil, "loc-a", 20, 0, base)

	order, err := f.orderUC.CreateOrder(ctx, appinv.CreateOrderInput{
		UserID: "user-1",
		Lines:  []appinv.OrderLineInput{{ProductID: "prod-granel", Quantity: 5}},
	})
	require.NoError(t, err)

	line, err := f.orderUC.AddLine(ctx, order.ID, appinv.OrderLineInput{ProductID: "prod-lote", Quantity: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, line.ID)

	stored, err := f.orderUC.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Lines, 2)

	_, err = f.orderUC.AllocateOrder(ctx, order.ID)
	require.NoError(t, err)

	// Asignada (aunque sea parcial) la orden deja de aceptar líneas.
	_, err = f.orderUC.AddLine(ctx, order.ID, appinv.OrderLineInput{ProductID: "prod-granel", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.orderUC.AddLine(ctx, order.ID, appinv.OrderLineInput{ProductID: "prod-granel", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestOrder_DespachoConcurrenteSoloSaleUnaVez(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedBalance("rec-1", "prod-granel", nil, "loc-a", 10, 0, base)

	order, err := f.orderUC.CreateOrder(ctx, appinv.CreateOrderInput{
		UserID: "user-1",
		Lines:  []appinv.OrderLineInput{{ProductID: "prod-granel", Quantity: 10}},
	})
	require.NoError(t, err)
	_, err = f.orderUC.AllocateOrder(ctx, order.ID)
	require.NoError(t, err)

	// El rival despacha la orden completa antes de que este despacho bloquee
	// la cabecera.
	rivalTx := &hookTxRunner{
		inner: &fakeTxRunner{s: f.store},
		before: func() {
			_, err := f.orderUC.Ship(ctx, order.ID, appinv.ShipInput{UserID: "user-2"})
			require.NoError(t, err)
		},
	}
	rival := appinv.NewOrderUseCase(rivalTx, &fakeOrderRepo{s: f.store}, &fakeProductRepo{s: f.store})

	_, err = rival.Ship(ctx, order.ID, appinv.ShipInput{UserID: "user-1"})
	assert.ErrorIs(t, err, domain.ErrConflict, "la orden ya está Shipped cuando el segundo entra")

	assert.Len(t, f.store.shipments, 1, "un solo despacho persistido")
	assert.Len(t, f.movementsOfType(entity.MovementTypeOutbound), 1)
	assert.Equal(t, int64(0), f.balance("rec-1").QuantityOnHand, "el stock salió una sola vez")
	assert.Equal(t, int64(0), f.balance("rec-1").QuantityAllocated)
}

func TestOrder_AsignacionConcurrenteNoReservaDoble(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedBalance("rec-1", "prod-granel", nil, "loc-a", 10, 0, base)

	order, err := f.orderUC.CreateOrder(ctx, appinv.CreateOrderInput{
		UserID: "user-1",
		Lines:  []appinv.OrderLineInput{{ProductID: "prod-granel", Quantity: 10}},
	})
	require.NoError(t, err)

	rivalTx := &hookTxRunner{
		inner: &fakeTxRunner{s: f.store},
		before: func() {
			_, err := f.orderUC.AllocateOrder(ctx, order.ID)
			require.NoError(t, err)
		},
	}
	rival := appinv.NewOrderUseCase(rivalTx, &fakeOrderRepo{s: f.store}, &fakeProductRepo{s: f.store})

	// La relectura bloqueada ve la orden ya Processing: conflicto en vez de
	// reservar de nuevo.
	results, err := rival.AllocateOrder(ctx, order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, results)

	assert.Equal(t, int64(10), f.balance("rec-1").QuantityAllocated, "la reserva no se duplica")
	stored, err := f.orderUC.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Lines[0].QuantityAllocated)
}

func TestOrder_DespacharSinAsignar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, err := f.orderUC.CreateOrder(ctx, appinv.CreateOrderInput{
		UserID: "user-1",
		Lines:  []appinv.OrderLineInput{{ProductID: "prod-granel", Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.orderUC.Ship(ctx, order.ID, appinv.ShipInput{UserID: "user-1"})
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden Pending no se puede despachar")
}

func TestOrder_CrearConCantidadInvalida(t *testing.T) {
	f := newFixture()

	_, err := f.orderUC.CreateOrder(context.Background(), appinv.CreateOrderInput{
		UserID: "user-1",
		Lines:  []appinv.OrderLineInput{{ProductID: "prod-granel", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.orderUC.CreateOrder(context.Background(), appinv.CreateOrderInput{UserID: "user-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una orden sin líneas no es válida")
}

func TestOrder_CrearConProductoInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.orderUC.CreateOrder(context.Background(), appinv.CreateOrderInput{
		UserID: "user-1",
		Lines:  []appinv.OrderLineInput{{ProductID: "prod-fantasma", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
