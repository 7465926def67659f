package entity

import "time"

// Estados de una recepción. Solo las recepciones Draft se pueden modificar,
// recibir o cancelar; Received y Cancelled son finales.
const (
	ReceiptStatusDraft     = "Draft"
	ReceiptStatusReceived  = "Received"
	ReceiptStatusCancelled = "Cancelled"
)

// Receipt representa la recepción de mercancía de un proveedor. PONumber es
// una referencia de texto libre a la orden de compra (el flujo documental de
// compras vive fuera de este sistema).
type Receipt struct {
	ID             string
	SupplierID     string
	Status         string
	PONumber       string
	CarrierName    string
	TrackingNumber string
	ReceivedBy     string // UserID
	ReceivedAt     *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Lines []*ReceiptLineItem
}

// ReceiptLineItem es una línea de recepción: cantidad de un producto que
// entra a una ubicación, con lote y vencimiento opcionales. Si LotNumber está
// vacío o el producto no es LotTracked, la entrada va como break-bulk.
type ReceiptLineItem struct {
	ID               string
	ReceiptID        string
	ProductID        string
	LocationID       string
	ExpectedQuantity int64
	ReceivedQuantity int64
	LotNumber        string
	ExpirationDate   *time.Time
	CreatedAt        time.Time
}
