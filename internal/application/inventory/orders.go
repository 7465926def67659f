package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// OrderUseCase gestiona órdenes de salida: creación, asignación de inventario
// por línea y despacho. La asignación y el despacho delegan en el motor del
// libro de inventario; el flujo documental de la orden (cliente, direcciones)
// queda fuera de este sistema.
type OrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OutboundOrderRepository
	productRepo repository.ProductRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, orderRepo repository.OutboundOrderRepository, productRepo repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, productRepo: productRepo}
}

// CreateOrderInput datos para crear una orden de salida.
type CreateOrderInput struct {
	CustomerRef string
	UserID      string
	Lines       []OrderLineInput
}

// OrderLineInput demanda de un producto dentro de la orden.
type OrderLineInput struct {
	ProductID string
	Quantity  int64
}

// CreateOrder crea la orden con sus líneas en estado Pending.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.OutboundOrder, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	order := &entity.OutboundOrder{
		OrderNumber: fmt.Sprintf("OO-%s", uuid.New().String()[:8]),
		Status:      entity.OrderStatusPending,
		CustomerRef: in.CustomerRef,
		CreatedBy:   in.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, line := range in.Lines {
		order.Lines = append(order.Lines, &entity.OutboundOrderLineItem{
			ProductID:       line.ProductID,
			QuantityOrdered: line.Quantity,
			CreatedAt:       now,
		})
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// AddLine agrega una línea a una orden que todavía está Pending.
func (uc *OrderUseCase) AddLine(ctx context.Context, orderID string, in OrderLineInput) (*entity.OutboundOrderLineItem, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrConflict
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	line := &entity.OutboundOrderLineItem{
		OrderID:         orderID,
		ProductID:       in.ProductID,
		QuantityOrdered: in.Quantity,
		CreatedAt:       time.Now(),
	}
	if err := uc.orderRepo.AddLine(line); err != nil {
		return nil, err
	}
	return line, nil
}

// LineAllocation resultado de asignación de una línea.
type LineAllocation struct {
	LineID    string
	ProductID string
	Allocated int64
	Shortfall int64
}

// AllocateOrder reserva inventario para cada línea pendiente de la orden.
// Cada producto es un paso atómico independiente dentro de la transacción de
// la orden: un faltante en una línea no revierte lo asignado a las demás; la
// orden queda Processing si todo se cubrió o PartiallyAllocated si no.
// El estado y las líneas se releen dentro de la transacción con la cabecera
// bloqueada: dos asignaciones concurrentes de la misma orden se serializan y
// la segunda solo ve lo que quedó pendiente.
func (uc *OrderUseCase) AllocateOrder(ctx context.Context, orderID string) ([]LineAllocation, error) {
	now := time.Now()
	var results []LineAllocation

	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		order, err := r.Orders.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending && order.Status != entity.OrderStatusPartiallyAllocated {
			return domain.ErrConflict
		}
		if len(order.Lines) == 0 {
			return domain.ErrInvalidInput
		}
		allCovered := true
		for _, line := range order.Lines {
			pending := line.QuantityOrdered - line.QuantityAllocated
			if pending <= 0 {
				continue
			}
			res, err := allocateInTx(r, line.ProductID, pending, now)
			if err != nil {
				return err
			}
			if res.Allocated > 0 {
				line.QuantityAllocated += res.Allocated
				if err := r.Orders.UpdateLineQuantities(line); err != nil {
					return err
				}
			}
			if res.Shortfall > 0 {
				allCovered = false
			}
			results = append(results, LineAllocation{
				LineID:    line.ID,
				ProductID: line.ProductID,
				Allocated: res.Allocated,
				Shortfall: res.Shortfall,
			})
		}
		status := entity.OrderStatusProcessing
		if !allCovered {
			status = entity.OrderStatusPartiallyAllocated
		}
		return r.Orders.UpdateStatus(order.ID, status,
			entity.OrderStatusPending, entity.OrderStatusPartiallyAllocated)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ShipInput datos para despachar una orden.
type ShipInput struct {
	CarrierName    string
	TrackingNumber string
	UserID         string
}

// Ship despacha todo lo asignado y aún no despachado de la orden: por cada
// línea recorre en orden FIFO las filas de saldo con reserva, libera la
// asignación y descuenta on hand en la misma operación, dejando un movimiento
// Outbound por fila referenciando el despacho. Una sola transacción, con la
// cabecera de la orden bloqueada: dos despachos concurrentes se serializan y
// el segundo encuentra la orden ya despachada.
func (uc *OrderUseCase) Ship(ctx context.Context, orderID string, in ShipInput) (*entity.Shipment, error) {
	now := time.Now()
	// El ID se fija aquí porque los movimientos Outbound lo referencian antes
	// de que el despacho se persista.
	shipment := &entity.Shipment{
		ID:             uuid.New().String(),
		ShipmentNumber: fmt.Sprintf("SHIP-%s", uuid.New().String()[:8]),
		OrderID:        orderID,
		ShippedBy:      in.UserID,
		ShippedAt:      now,
		CarrierName:    in.CarrierName,
		TrackingNumber: in.TrackingNumber,
		CreatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		order, err := r.Orders.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusProcessing && order.Status != entity.OrderStatusPartiallyAllocated {
			return domain.ErrConflict
		}
		shippedAny := false
		allShipped := true
		for _, line := range order.Lines {
			toShip := line.QuantityAllocated - line.QuantityShipped
			if toShip <= 0 {
				if line.QuantityShipped < line.QuantityOrdered {
					allShipped = false
				}
				continue
			}
			rows, err := r.Inventory.ListAllocatedByProductForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			remaining := toShip
			for _, row := range rows {
				if remaining == 0 {
					break
				}
				take := row.QuantityAllocated
				if remaining < take {
					take = remaining
				}
				mov := &entity.StockMovement{
					Type:           entity.MovementTypeOutbound,
					ProductID:      line.ProductID,
					LotID:          row.LotID,
					FromLocationID: &row.LocationID,
					Quantity:       take,
					ReferenceType:  entity.ReferenceTypeShipment,
					ReferenceID:    &shipment.ID,
					CreatedBy:      in.UserID,
					OccurredAt:     now,
				}
				if err := row.ApplyDelta(-take, -take); err != nil {
					return err
				}
				row.UpdatedAt = now
				if err := r.Inventory.UpdateQuantities(row); err != nil {
					return err
				}
				if err := r.Movements.Create(mov); err != nil {
					return err
				}
				shipment.Lines = append(shipment.Lines, &entity.ShipmentLineItem{
					OrderLineID:       line.ID,
					ProductID:         line.ProductID,
					InventoryRecordID: row.ID,
					Quantity:          take,
					CreatedAt:         now,
				})
				remaining -= take
			}
			if remaining > 0 {
				// La reserva de la línea excede lo reservado en filas: el
				// libro y la orden están desincronizados.
				return fmt.Errorf("línea %s producto %s: reserva sin filas de respaldo: %w",
					line.ID, line.ProductID, domain.ErrMissingInventoryRecord)
			}
			line.QuantityShipped += toShip
			line.QuantityAllocated -= toShip
			if err := r.Orders.UpdateLineQuantities(line); err != nil {
				return err
			}
			shippedAny = true
			if line.QuantityShipped < line.QuantityOrdered {
				allShipped = false
			}
		}
		if !shippedAny {
			return domain.ErrConflict
		}
		if err := r.Shipments.Create(shipment); err != nil {
			return err
		}
		if allShipped {
			return r.Orders.UpdateStatus(order.ID, entity.OrderStatusShipped,
				entity.OrderStatusProcessing, entity.OrderStatusPartiallyAllocated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// GetByID devuelve una orden con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, orderID string) (*entity.OutboundOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes con filtros.
func (uc *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.OutboundOrder, error) {
	return uc.orderRepo.List(filter)
}
