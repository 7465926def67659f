package dto

import "time"

// ─── Saldos y movimientos ───

// BalanceResponse una fila de saldo del libro, con el disponible derivado.
type BalanceResponse struct {
	ID                string     `json:"id,omitempty"`
	ProductID         string     `json:"product_id"`
	LotID             *string    `json:"lot_id,omitempty"`
	LocationID        string     `json:"location_id"`
	QuantityOnHand    int64      `json:"quantity_on_hand"`
	QuantityAllocated int64      `json:"quantity_allocated"`
	QuantityAvailable int64      `json:"quantity_available"`
	LastCountedAt     *time.Time `json:"last_counted_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at,omitempty"`
}

// BalanceListResponse listado paginado de saldos.
type BalanceListResponse struct {
	Items []BalanceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// MovementResponse una entrada del log de movimientos.
type MovementResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	ProductID      string    `json:"product_id"`
	LotID          *string   `json:"lot_id,omitempty"`
	FromLocationID *string   `json:"from_location_id,omitempty"`
	ToLocationID   *string   `json:"to_location_id,omitempty"`
	Quantity       int64     `json:"quantity"`
	Reason         string    `json:"reason,omitempty"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    *string   `json:"reference_id,omitempty"`
	CreatedBy      string    `json:"created_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ─── Recepciones ───

// CreateReceiptRequest crea una recepción en borrador.
type CreateReceiptRequest struct {
	SupplierID     string `json:"supplier_id" validate:"required"`
	PONumber       string `json:"po_number"`
	CarrierName    string `json:"carrier_name"`
	TrackingNumber string `json:"tracking_number"`
	Notes          string `json:"notes"`
}

// AddReceiptLineRequest agrega una línea a una recepción Draft.
type AddReceiptLineRequest struct {
	ProductID        string     `json:"product_id" validate:"required"`
	LocationID       string     `json:"location_id" validate:"required"`
	ExpectedQuantity int64      `json:"expected_quantity"`
	ReceivedQuantity int64      `json:"received_quantity" validate:"required,min=1"`
	LotNumber        string     `json:"lot_number"`
	ExpirationDate   *time.Time `json:"expiration_date"`
}

// ReceiptLineResponse una línea de recepción.
type ReceiptLineResponse struct {
	ID               string     `json:"id"`
	ProductID        string     `json:"product_id"`
	LocationID       string     `json:"location_id"`
	ExpectedQuantity int64      `json:"expected_quantity"`
	ReceivedQuantity int64      `json:"received_quantity"`
	LotNumber        string     `json:"lot_number,omitempty"`
	ExpirationDate   *time.Time `json:"expiration_date,omitempty"`
}

// ReceiptResponse una recepción con sus líneas.
type ReceiptResponse struct {
	ID             string                `json:"id"`
	SupplierID     string                `json:"supplier_id"`
	Status         string                `json:"status"`
	PONumber       string                `json:"po_number,omitempty"`
	CarrierName    string                `json:"carrier_name,omitempty"`
	TrackingNumber string                `json:"tracking_number,omitempty"`
	ReceivedBy     string                `json:"received_by,omitempty"`
	ReceivedAt     *time.Time            `json:"received_at,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	Lines          []ReceiptLineResponse `json:"lines,omitempty"`
}

// ReceiptListResponse listado paginado de recepciones.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ─── Asignación y traslados ───

// AllocateRequest reserva unidades de un producto.
type AllocateRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// AllocateResponse resultado de la reserva.
type AllocateResponse struct {
	ProductID string `json:"product_id"`
	Requested int64  `json:"requested"`
	Allocated int64  `json:"allocated"`
	Shortfall int64  `json:"shortfall"`
}

// DeallocateRequest libera unidades reservadas de una fila de saldo.
type DeallocateRequest struct {
	InventoryRecordID string `json:"inventory_record_id" validate:"required"`
	Quantity          int64  `json:"quantity" validate:"required,min=1"`
}

// TransferRequest traslada stock entre ubicaciones.
type TransferRequest struct {
	ProductID      string  `json:"product_id" validate:"required"`
	LotID          *string `json:"lot_id"`
	FromLocationID string  `json:"from_location_id" validate:"required"`
	ToLocationID   string  `json:"to_location_id" validate:"required"`
	Quantity       int64   `json:"quantity" validate:"required,min=1"`
	Reason         string  `json:"reason"`
}

// ─── Órdenes de salida y despachos ───

// CreateOrderRequest crea una orden de salida con sus líneas.
type CreateOrderRequest struct {
	CustomerRef string             `json:"customer_ref"`
	Lines       []OrderLineRequest `json:"lines" validate:"required,min=1"`
}

// OrderLineRequest demanda de un producto en la orden.
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// OrderLineResponse una línea de orden con sus tres cantidades.
type OrderLineResponse struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	QuantityOrdered   int64  `json:"quantity_ordered"`
	QuantityAllocated int64  `json:"quantity_allocated"`
	QuantityShipped   int64  `json:"quantity_shipped"`
}

// OrderResponse una orden con sus líneas.
type OrderResponse struct {
	ID          string              `json:"id"`
	OrderNumber string              `json:"order_number"`
	Status      string              `json:"status"`
	CustomerRef string              `json:"customer_ref,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Lines       []OrderLineResponse `json:"lines,omitempty"`
}

// OrderListResponse listado paginado de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// LineAllocationResponse resultado de asignación por línea.
type LineAllocationResponse struct {
	LineID    string `json:"line_id"`
	ProductID string `json:"product_id"`
	Allocated int64  `json:"allocated"`
	Shortfall int64  `json:"shortfall"`
}

// ShipRequest despacha lo asignado de una orden.
type ShipRequest struct {
	CarrierName    string `json:"carrier_name"`
	TrackingNumber string `json:"tracking_number"`
}

// ShipmentLineResponse una línea despachada.
type ShipmentLineResponse struct {
	ID                string `json:"id"`
	OrderLineID       string `json:"order_line_id"`
	ProductID         string `json:"product_id"`
	InventoryRecordID string `json:"inventory_record_id"`
	Quantity          int64  `json:"quantity"`
}

// ShipmentResponse un despacho con sus líneas.
type ShipmentResponse struct {
	ID             string                 `json:"id"`
	ShipmentNumber string                 `json:"shipment_number"`
	OrderID        string                 `json:"order_id"`
	ShippedBy      string                 `json:"shipped_by"`
	ShippedAt      time.Time              `json:"shipped_at"`
	CarrierName    string                 `json:"carrier_name,omitempty"`
	TrackingNumber string                 `json:"tracking_number,omitempty"`
	Lines          []ShipmentLineResponse `json:"lines"`
}

// ─── Conteos físicos ───

// InitiateStockTakeRequest inicia un conteo físico sobre un subconjunto del
// libro. Sin filtros cuenta la bodega completa.
type InitiateStockTakeRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Notes      string `json:"notes"`
}

// SubmitCountRequest registra la cantidad contada de un ítem.
type SubmitCountRequest struct {
	CountedQuantity      int64  `json:"counted_quantity" validate:"min=0"`
	ReasonForDiscrepancy string `json:"reason_for_discrepancy"`
}

// StockTakeItemResponse un ítem de conteo.
type StockTakeItemResponse struct {
	ID                   string     `json:"id"`
	InventoryRecordID    string     `json:"inventory_record_id"`
	ProductID            string     `json:"product_id"`
	LotID                *string    `json:"lot_id,omitempty"`
	LocationID           string     `json:"location_id"`
	ExpectedQuantity     int64      `json:"expected_quantity"`
	CountedQuantity      *int64     `json:"counted_quantity,omitempty"`
	CountedBy            *string    `json:"counted_by,omitempty"`
	CountedAt            *time.Time `json:"counted_at,omitempty"`
	ReasonForDiscrepancy string     `json:"reason_for_discrepancy,omitempty"`
	AdjustmentMovementID *string    `json:"adjustment_movement_id,omitempty"`
}

// StockTakeResponse un conteo con sus ítems.
type StockTakeResponse struct {
	ID          string                  `json:"id"`
	Number      string                  `json:"number"`
	Status      string                  `json:"status"`
	InitiatedBy string                  `json:"initiated_by"`
	StartedAt   time.Time               `json:"started_at"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	Notes       string                  `json:"notes,omitempty"`
	Items       []StockTakeItemResponse `json:"items,omitempty"`
}

// StockTakeListResponse listado paginado de conteos.
type StockTakeListResponse struct {
	Items []StockTakeResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
