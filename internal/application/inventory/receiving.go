package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ReceivingUseCase gestiona recepciones: borrador, líneas y el procesamiento
// que aplica las cantidades al libro de inventario. Recibir es todo-o-nada
// sobre las líneas de una recepción: cualquier línea que falle revierte la
// transacción completa, porque la asignación aguas abajo debe ver la
// recepción entera o ninguna parte de ella.
type ReceivingUseCase struct {
	txRunner     TxRunner
	receiptRepo  repository.ReceiptRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	locationRepo repository.LocationRepository
}

// NewReceivingUseCase construye el caso de uso.
func NewReceivingUseCase(
	txRunner TxRunner,
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	locationRepo repository.LocationRepository,
) *ReceivingUseCase {
	return &ReceivingUseCase{
		txRunner:     txRunner,
		receiptRepo:  receiptRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		locationRepo: locationRepo,
	}
}

// CreateReceiptInput datos para crear una recepción en borrador.
type CreateReceiptInput struct {
	SupplierID     string
	PONumber       string
	CarrierName    string
	TrackingNumber string
	Notes          string
	UserID         string
}

// CreateReceipt crea una recepción en estado Draft.
func (uc *ReceivingUseCase) CreateReceipt(ctx context.Context, in CreateReceiptInput) (*entity.Receipt, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	receipt := &entity.Receipt{
		SupplierID:     in.SupplierID,
		Status:         entity.ReceiptStatusDraft,
		PONumber:       in.PONumber,
		CarrierName:    in.CarrierName,
		TrackingNumber: in.TrackingNumber,
		ReceivedBy:     in.UserID,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.receiptRepo.Create(receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// AddLineInput datos de una línea de recepción.
type AddLineInput struct {
	ProductID        string
	LocationID       string
	ExpectedQuantity int64
	ReceivedQuantity int64
	LotNumber        string
	ExpirationDate   *time.Time
}

// AddLine agrega una línea a una recepción Draft. Valida producto y ubicación;
// la cantidad recibida debe ser positiva.
func (uc *ReceivingUseCase) AddLine(ctx context.Context, receiptID string, in AddLineInput) (*entity.ReceiptLineItem, error) {
	if in.ReceivedQuantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	if receipt.Status != entity.ReceiptStatusDraft {
		return nil, domain.ErrConflict
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	line := &entity.ReceiptLineItem{
		ReceiptID:        receiptID,
		ProductID:        in.ProductID,
		LocationID:       in.LocationID,
		ExpectedQuantity: in.ExpectedQuantity,
		ReceivedQuantity: in.ReceivedQuantity,
		LotNumber:        in.LotNumber,
		ExpirationDate:   in.ExpirationDate,
		CreatedAt:        time.Now(),
	}
	if err := uc.receiptRepo.AddLine(line); err != nil {
		return nil, err
	}
	return line, nil
}

// Receive procesa una recepción Draft: por cada línea resuelve el lote, suma
// on hand en la ubicación destino (sin tocar asignado) y appendea un
// movimiento Inbound referenciando la recepción. Una sola transacción para
// todas las líneas más el cambio de estado a Received. El estado se re-chequea
// dentro de la transacción con la cabecera bloqueada: dos envíos concurrentes
// del mismo Draft se serializan y el segundo devuelve ErrConflict en vez de
// aplicar las cantidades dos veces.
func (uc *ReceivingUseCase) Receive(ctx context.Context, receiptID, userID string) ([]*entity.StockMovement, error) {
	// Chequeo barato antes de abrir la transacción; la verdad es la relectura
	// bloqueada de adentro.
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	if receipt.Status != entity.ReceiptStatusDraft {
		return nil, domain.ErrConflict
	}

	// Productos fuera de la tx: solo se necesita el flag LotTracked.
	products := make(map[string]*entity.Product, len(receipt.Lines))
	for _, line := range receipt.Lines {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		products[line.ProductID] = product
	}

	now := time.Now()
	var movements []*entity.StockMovement

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		receipt, err := r.Receipts.GetByIDForUpdate(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if receipt.Status != entity.ReceiptStatusDraft {
			return domain.ErrConflict
		}
		if len(receipt.Lines) == 0 {
			return domain.ErrInvalidInput
		}
		for _, line := range receipt.Lines {
			if line.ReceivedQuantity <= 0 {
				return domain.ErrInvalidQuantity
			}
			product := products[line.ProductID]
			if product == nil {
				// Línea agregada entre la prelectura y el bloqueo.
				if product, err = uc.productRepo.GetByID(line.ProductID); err != nil {
					return err
				}
				if product == nil {
					return domain.ErrNotFound
				}
			}
			lot, err := resolveLot(r.Lots, line.ProductID, line.LotNumber,
				line.ExpirationDate, !product.LotTracked, now)
			if err != nil {
				return err
			}
			var lotID *string
			if lot != nil {
				lotID = &lot.ID
			}
			mov := &entity.StockMovement{
				Type:          entity.MovementTypeInbound,
				ProductID:     line.ProductID,
				LotID:         lotID,
				ToLocationID:  &line.LocationID,
				Quantity:      line.ReceivedQuantity,
				ReferenceType: entity.ReferenceTypeReceipt,
				ReferenceID:   &receipt.ID,
				CreatedBy:     userID,
				OccurredAt:    now,
			}
			if _, err := applyDelta(r, deltaInput{
				ProductID:   line.ProductID,
				LotID:       lotID,
				LocationID:  line.LocationID,
				OnHandDelta: line.ReceivedQuantity,
				Movement:    mov,
				Now:         now,
			}); err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		receivedAt := now
		return r.Receipts.UpdateStatus(receipt.ID, entity.ReceiptStatusReceived, &receivedAt, entity.ReceiptStatusDraft)
	})
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// Cancel cancela una recepción Draft. El UPDATE exige el estado previo, así
// que una recepción recibida en paralelo no se puede cancelar por debajo.
func (uc *ReceivingUseCase) Cancel(ctx context.Context, receiptID string) error {
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return err
	}
	if receipt == nil {
		return domain.ErrNotFound
	}
	if receipt.Status != entity.ReceiptStatusDraft {
		return domain.ErrConflict
	}
	return uc.receiptRepo.UpdateStatus(receiptID, entity.ReceiptStatusCancelled, nil, entity.ReceiptStatusDraft)
}

// GetByID devuelve una recepción con sus líneas.
func (uc *ReceivingUseCase) GetByID(ctx context.Context, receiptID string) (*entity.Receipt, error) {
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	return receipt, nil
}

// List lista recepciones con filtros.
func (uc *ReceivingUseCase) List(ctx context.Context, filter repository.ReceiptFilter) ([]*entity.Receipt, error) {
	return uc.receiptRepo.List(filter)
}
