package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	appinv "github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria: una sola "base de datos" compartida por todos los
// repositorios fake, con snapshot/restore para emular el rollback de la tx.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	records    map[string]*entity.InventoryRecord
	movements  []*entity.StockMovement
	lots       map[string]*entity.ProductLot
	receipts   map[string]*entity.Receipt
	orders     map[string]*entity.OutboundOrder
	shipments  map[string]*entity.Shipment
	stockTakes map[string]*entity.StockTake
	items      []*entity.StockTakeItem
	products   map[string]*entity.Product
	suppliers  map[string]*entity.Supplier
	locations  map[string]*entity.WarehouseLocation
	seq        int
}

func newMemStore() *memStore {
	return &memStore{
		records:    map[string]*entity.InventoryRecord{},
		lots:       map[string]*entity.ProductLot{},
		receipts:   map[string]*entity.Receipt{},
		orders:     map[string]*entity.OutboundOrder{},
		shipments:  map[string]*entity.Shipment{},
		stockTakes: map[string]*entity.StockTake{},
		products:   map[string]*entity.Product{},
		suppliers:  map[string]*entity.Supplier{},
		locations:  map[string]*entity.WarehouseLocation{},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%04d", prefix, s.seq)
}

func copyRecord(r *entity.InventoryRecord) *entity.InventoryRecord { c := *r; return &c }

func copyMovement(m *entity.StockMovement) *entity.StockMovement { c := *m; return &c }

func copyReceipt(r *entity.Receipt) *entity.Receipt {
	c := *r
	c.Lines = nil
	for _, l := range r.Lines {
		lc := *l
		c.Lines = append(c.Lines, &lc)
	}
	return &c
}

func copyOrder(o *entity.OutboundOrder) *entity.OutboundOrder {
	c := *o
	c.Lines = nil
	for _, l := range o.Lines {
		lc := *l
		c.Lines = append(c.Lines, &lc)
	}
	return &c
}

func copyShipment(sh *entity.Shipment) *entity.Shipment {
	c := *sh
	c.Lines = nil
	for _, l := range sh.Lines {
		lc := *l
		c.Lines = append(c.Lines, &lc)
	}
	return &c
}

func copyStockTake(st *entity.StockTake) *entity.StockTake {
	c := *st
	c.Items = nil
	for _, it := range st.Items {
		ic := *it
		c.Items = append(c.Items, &ic)
	}
	return &c
}

// snapshot clona todo lo mutable dentro de una transacción.
func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	snap.seq = s.seq
	for id, r := range s.records {
		snap.records[id] = copyRecord(r)
	}
	for _, m := range s.movements {
		snap.movements = append(snap.movements, copyMovement(m))
	}
	for id, l := range s.lots {
		lc := *l
		snap.lots[id] = &lc
	}
	for id, r := range s.receipts {
		snap.receipts[id] = copyReceipt(r)
	}
	for id, o := range s.orders {
		snap.orders[id] = copyOrder(o)
	}
	for id, sh := range s.shipments {
		snap.shipments[id] = copyShipment(sh)
	}
	for id, st := range s.stockTakes {
		snap.stockTakes[id] = copyStockTake(st)
	}
	for _, it := range s.items {
		ic := *it
		snap.items = append(snap.items, &ic)
	}
	snap.products = s.products
	snap.suppliers = s.suppliers
	snap.locations = s.locations
	return snap
}

func (s *memStore) restore(snap *memStore) { *s = *snap }

// statusIn replica el guard `AND status = ANY(from)` de los UPDATE reales:
// con from vacío el cambio es incondicional.
func statusIn(status string, from []string) bool {
	if len(from) == 0 {
		return true
	}
	for _, f := range from {
		if f == status {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake sobre el store
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct{ s *memStore }

func (f *fakeInventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	if r, ok := f.s.records[id]; ok {
		return copyRecord(r), nil
	}
	return nil, nil
}

func (f *fakeInventoryRepo) GetByIDForUpdate(id string) (*entity.InventoryRecord, error) {
	return f.GetByID(id)
}

func (f *fakeInventoryRepo) Get(productID string, lotID *string, locationID string) (*entity.InventoryRecord, error) {
	for _, r := range f.s.records {
		if r.LocationID != locationID {
			continue
		}
		if lotID != nil {
			if r.LotID != nil && *r.LotID == *lotID {
				return copyRecord(r), nil
			}
			continue
		}
		if r.ProductID == productID && r.LotID == nil {
			return copyRecord(r), nil
		}
	}
	return nil, nil
}

func (f *fakeInventoryRepo) GetForUpdate(productID string, lotID *string, locationID string) (*entity.InventoryRecord, error) {
	return f.Get(productID, lotID, locationID)
}

func (f *fakeInventoryRepo) fifoRows(productID string, keep func(*entity.InventoryRecord) bool) []*entity.InventoryRecord {
	var rows []*entity.InventoryRecord
	for _, r := range f.s.records {
		if r.ProductID == productID && keep(r) {
			rows = append(rows, copyRecord(r))
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	return rows
}

func (f *fakeInventoryRepo) ListAvailableByProductForUpdate(productID string) ([]*entity.InventoryRecord, error) {
	return f.fifoRows(productID, func(r *entity.InventoryRecord) bool { return r.Available() > 0 }), nil
}

func (f *fakeInventoryRepo) ListAllocatedByProductForUpdate(productID string) ([]*entity.InventoryRecord, error) {
	return f.fifoRows(productID, func(r *entity.InventoryRecord) bool { return r.QuantityAllocated > 0 }), nil
}

func (f *fakeInventoryRepo) Create(record *entity.InventoryRecord) error {
	if record.ID == "" {
		record.ID = f.s.nextID("rec")
	}
	f.s.records[record.ID] = copyRecord(record)
	return nil
}

func (f *fakeInventoryRepo) UpdateQuantities(record *entity.InventoryRecord) error {
	if _, ok := f.s.records[record.ID]; !ok {
		return fmt.Errorf("fila %s: %w", record.ID, domain.ErrMissingInventoryRecord)
	}
	f.s.records[record.ID] = copyRecord(record)
	return nil
}

func (f *fakeInventoryRepo) List(filter repository.InventoryFilter) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, r := range f.s.records {
		if filter.ProductID != "" && r.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && r.LocationID != filter.LocationID {
			continue
		}
		out = append(out, copyRecord(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeMovementRepo struct{ s *memStore }

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = f.s.nextID("mov")
	}
	f.s.movements = append(f.s.movements, copyMovement(m))
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range f.s.movements {
		if m.ID == id {
			return copyMovement(m), nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.s.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.ReferenceType != "" && m.ReferenceType != filter.ReferenceType {
			continue
		}
		if filter.ReferenceID != "" && (m.ReferenceID == nil || *m.ReferenceID != filter.ReferenceID) {
			continue
		}
		if filter.LocationID != "" && m.OnHandEffect(filter.LocationID) == 0 {
			continue
		}
		out = append(out, copyMovement(m))
	}
	return out, nil
}

type fakeLotRepo struct{ s *memStore }

func (f *fakeLotRepo) GetByID(id string) (*entity.ProductLot, error) {
	if l, ok := f.s.lots[id]; ok {
		lc := *l
		return &lc, nil
	}
	return nil, nil
}

func (f *fakeLotRepo) GetByProductAndLot(productID, lotNumber string) (*entity.ProductLot, error) {
	for _, l := range f.s.lots {
		if l.ProductID == productID && l.LotNumber == lotNumber {
			lc := *l
			return &lc, nil
		}
	}
	return nil, nil
}

func (f *fakeLotRepo) Create(lot *entity.ProductLot) error {
	for _, l := range f.s.lots {
		if l.ProductID == lot.ProductID && l.LotNumber == lot.LotNumber {
			return domain.ErrDuplicate
		}
	}
	if lot.ID == "" {
		lot.ID = f.s.nextID("lot")
	}
	lc := *lot
	f.s.lots[lot.ID] = &lc
	return nil
}

func (f *fakeLotRepo) SetExpiration(id string, expiration time.Time) error {
	if l, ok := f.s.lots[id]; ok && l.ExpirationDate == nil {
		l.ExpirationDate = &expiration
	}
	return nil
}

type fakeReceiptRepo struct{ s *memStore }

func (f *fakeReceiptRepo) Create(r *entity.Receipt) error {
	if r.ID == "" {
		r.ID = f.s.nextID("rcpt")
	}
	f.s.receipts[r.ID] = copyReceipt(r)
	return nil
}

func (f *fakeReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	if r, ok := f.s.receipts[id]; ok {
		return copyReceipt(r), nil
	}
	return nil, nil
}

func (f *fakeReceiptRepo) AddLine(line *entity.ReceiptLineItem) error {
	r, ok := f.s.receipts[line.ReceiptID]
	if !ok {
		return domain.ErrNotFound
	}
	if line.ID == "" {
		line.ID = f.s.nextID("rline")
	}
	lc := *line
	r.Lines = append(r.Lines, &lc)
	return nil
}

func (f *fakeReceiptRepo) GetByIDForUpdate(id string) (*entity.Receipt, error) {
	return f.GetByID(id)
}

func (f *fakeReceiptRepo) UpdateStatus(id, status string, receivedAt *time.Time, from ...string) error {
	r, ok := f.s.receipts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !statusIn(r.Status, from) {
		return domain.ErrConflict
	}
	r.Status = status
	if receivedAt != nil {
		r.ReceivedAt = receivedAt
	}
	return nil
}

func (f *fakeReceiptRepo) List(filter repository.ReceiptFilter) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, r := range f.s.receipts {
		if filter.SupplierID != "" && r.SupplierID != filter.SupplierID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, copyReceipt(r))
	}
	return out, nil
}

type fakeOrderRepo struct{ s *memStore }

func (f *fakeOrderRepo) Create(o *entity.OutboundOrder) error {
	if o.ID == "" {
		o.ID = f.s.nextID("ord")
	}
	for _, l := range o.Lines {
		if l.ID == "" {
			l.ID = f.s.nextID("oline")
		}
		l.OrderID = o.ID
	}
	f.s.orders[o.ID] = copyOrder(o)
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.OutboundOrder, error) {
	if o, ok := f.s.orders[id]; ok {
		return copyOrder(o), nil
	}
	return nil, nil
}

func (f *fakeOrderRepo) AddLine(line *entity.OutboundOrderLineItem) error {
	o, ok := f.s.orders[line.OrderID]
	if !ok {
		return domain.ErrNotFound
	}
	if line.ID == "" {
		line.ID = f.s.nextID("oline")
	}
	lc := *line
	o.Lines = append(o.Lines, &lc)
	return nil
}

func (f *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.OutboundOrder, error) {
	return f.GetByID(id)
}

func (f *fakeOrderRepo) UpdateStatus(id, status string, from ...string) error {
	o, ok := f.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !statusIn(o.Status, from) {
		return domain.ErrConflict
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) UpdateLineQuantities(line *entity.OutboundOrderLineItem) error {
	o, ok := f.s.orders[line.OrderID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, l := range o.Lines {
		if l.ID == line.ID {
			l.QuantityAllocated = line.QuantityAllocated
			l.QuantityShipped = line.QuantityShipped
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeOrderRepo) List(filter repository.OrderFilter) ([]*entity.OutboundOrder, error) {
	var out []*entity.OutboundOrder
	for _, o := range f.s.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, copyOrder(o))
	}
	return out, nil
}

type fakeShipmentRepo struct{ s *memStore }

func (f *fakeShipmentRepo) Create(sh *entity.Shipment) error {
	if sh.ID == "" {
		sh.ID = f.s.nextID("ship")
	}
	for _, l := range sh.Lines {
		if l.ID == "" {
			l.ID = f.s.nextID("sline")
		}
		l.ShipmentID = sh.ID
	}
	f.s.shipments[sh.ID] = copyShipment(sh)
	return nil
}

func (f *fakeShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	if sh, ok := f.s.shipments[id]; ok {
		return copyShipment(sh), nil
	}
	return nil, nil
}

func (f *fakeShipmentRepo) ListByOrder(orderID string) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	for _, sh := range f.s.shipments {
		if sh.OrderID == orderID {
			out = append(out, copyShipment(sh))
		}
	}
	return out, nil
}

type fakeStockTakeRepo struct{ s *memStore }

func (f *fakeStockTakeRepo) Create(st *entity.StockTake) error {
	if st.ID == "" {
		st.ID = f.s.nextID("st")
	}
	f.s.stockTakes[st.ID] = copyStockTake(st)
	return nil
}

func (f *fakeStockTakeRepo) withItems(st *entity.StockTake) *entity.StockTake {
	out := copyStockTake(st)
	out.Items = nil
	for _, it := range f.s.items {
		if it.StockTakeID == st.ID {
			ic := *it
			out.Items = append(out.Items, &ic)
		}
	}
	return out
}

func (f *fakeStockTakeRepo) GetByID(id string) (*entity.StockTake, error) {
	if st, ok := f.s.stockTakes[id]; ok {
		return f.withItems(st), nil
	}
	return nil, nil
}

func (f *fakeStockTakeRepo) GetByIDForUpdate(id string) (*entity.StockTake, error) {
	return f.GetByID(id)
}

func (f *fakeStockTakeRepo) UpdateStatus(id, status string, completedAt *time.Time, from ...string) error {
	st, ok := f.s.stockTakes[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !statusIn(st.Status, from) {
		return domain.ErrConflict
	}
	st.Status = status
	if completedAt != nil {
		st.CompletedAt = completedAt
	}
	return nil
}

func (f *fakeStockTakeRepo) List(filter repository.StockTakeFilter) ([]*entity.StockTake, error) {
	var out []*entity.StockTake
	for _, st := range f.s.stockTakes {
		if filter.Status != "" && st.Status != filter.Status {
			continue
		}
		out = append(out, f.withItems(st))
	}
	return out, nil
}

func (f *fakeStockTakeRepo) CreateItems(items []*entity.StockTakeItem) error {
	for _, it := range items {
		if it.ID == "" {
			it.ID = f.s.nextID("item")
		}
		ic := *it
		f.s.items = append(f.s.items, &ic)
	}
	return nil
}

func (f *fakeStockTakeRepo) GetItemByID(itemID string) (*entity.StockTakeItem, error) {
	for _, it := range f.s.items {
		if it.ID == itemID {
			ic := *it
			return &ic, nil
		}
	}
	return nil, nil
}

func (f *fakeStockTakeRepo) UpdateItemCount(itemID string, update repository.StockTakeItemUpdate) error {
	for _, it := range f.s.items {
		if it.ID == itemID {
			counted := update.CountedQuantity
			countedAt := update.CountedAt
			it.CountedQuantity = &counted
			it.CountedBy = &update.CountedBy
			it.CountedAt = &countedAt
			it.ReasonForDiscrepancy = update.ReasonForDiscrepancy
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeStockTakeRepo) SetItemAdjustment(itemID, movementID string) error {
	for _, it := range f.s.items {
		if it.ID == itemID {
			it.AdjustmentMovementID = &movementID
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeProductRepo struct{ s *memStore }

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.s.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := f.s.products[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range f.s.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error { f.s.products[p.ID] = p; return nil }

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type fakeSupplierRepo struct{ s *memStore }

func (f *fakeSupplierRepo) Create(sp *entity.Supplier) error { f.s.suppliers[sp.ID] = sp; return nil }

func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if sp, ok := f.s.suppliers[id]; ok {
		return sp, nil
	}
	return nil, nil
}

func (f *fakeSupplierRepo) Update(sp *entity.Supplier) error { return nil }

func (f *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }

type fakeLocationRepo struct{ s *memStore }

func (f *fakeLocationRepo) Create(l *entity.WarehouseLocation) error {
	f.s.locations[l.ID] = l
	return nil
}

func (f *fakeLocationRepo) GetByID(id string) (*entity.WarehouseLocation, error) {
	if l, ok := f.s.locations[id]; ok {
		return l, nil
	}
	return nil, nil
}

func (f *fakeLocationRepo) GetByCode(code string) (*entity.WarehouseLocation, error) {
	for _, l := range f.s.locations {
		if l.Code == code {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLocationRepo) Update(l *entity.WarehouseLocation) error { return nil }

func (f *fakeLocationRepo) List(limit, offset int) ([]*entity.WarehouseLocation, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner fake: ejecuta fn sobre el store y restaura el snapshot si falla,
// emulando el rollback todo-o-nada de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	s *memStore
	// lots reemplaza el repo de lotes dentro de la tx cuando no es nil, para
	// simular lecturas desfasadas en el find-or-create.
	lots repository.ProductLotRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(r appinv.TxRepos) error) error {
	lots := f.lots
	if lots == nil {
		lots = &fakeLotRepo{s: f.s}
	}
	snap := f.s.snapshot()
	err := fn(appinv.TxRepos{
		Inventory:  &fakeInventoryRepo{s: f.s},
		Movements:  &fakeMovementRepo{s: f.s},
		Lots:       lots,
		Receipts:   &fakeReceiptRepo{s: f.s},
		Orders:     &fakeOrderRepo{s: f.s},
		Shipments:  &fakeShipmentRepo{s: f.s},
		StockTakes: &fakeStockTakeRepo{s: f.s},
	})
	if err != nil {
		f.s.restore(snap)
	}
	return err
}

// hookTxRunner ejecuta before una sola vez justo antes de abrir la
// transacción: el intervalo entre la prelectura del caso de uso y el bloqueo
// de la cabecera, donde una operación rival puede colarse completa.
type hookTxRunner struct {
	inner  appinv.TxRunner
	before func()
}

func (r *hookTxRunner) Run(ctx context.Context, fn func(appinv.TxRepos) error) error {
	if r.before != nil {
		b := r.before
		r.before = nil
		b()
	}
	return r.inner.Run(ctx, fn)
}

// Checks de interfaz: los fakes deben cumplir los mismos puertos que postgres.
var (
	_ repository.InventoryRepository     = (*fakeInventoryRepo)(nil)
	_ repository.StockMovementRepository = (*fakeMovementRepo)(nil)
	_ repository.ProductLotRepository    = (*fakeLotRepo)(nil)
	_ repository.ReceiptRepository       = (*fakeReceiptRepo)(nil)
	_ repository.OutboundOrderRepository = (*fakeOrderRepo)(nil)
	_ repository.ShipmentRepository      = (*fakeShipmentRepo)(nil)
	_ repository.StockTakeRepository     = (*fakeStockTakeRepo)(nil)
	_ repository.ProductRepository       = (*fakeProductRepo)(nil)
	_ repository.SupplierRepository      = (*fakeSupplierRepo)(nil)
	_ repository.LocationRepository      = (*fakeLocationRepo)(nil)
	_ appinv.TxRunner                    = (*fakeTxRunner)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture común: catálogo mínimo + casos de uso cableados sobre el store
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store       *memStore
	receivingUC *appinv.ReceivingUseCase
	allocUC     *appinv.AllocationUseCase
	orderUC     *appinv.OrderUseCase
	stockTakeUC *appinv.StockTakeUseCase
	queryUC     *appinv.QueryUseCase
}

func newFixture() *fixture {
	s := newMemStore()
	s.products["prod-granel"] = &entity.Product{ID: "prod-granel", Code: "GRA-001", Name: "Arroz a granel", LotTracked: false}
	s.products["prod-lote"] = &entity.Product{ID: "prod-lote", Code: "LOT-001", Name: "Leche en polvo", LotTracked: true}
	s.suppliers["sup-1"] = &entity.Supplier{ID: "sup-1", Name: "Distribuidora Andina"}
	s.locations["loc-recv"] = &entity.WarehouseLocation{ID: "loc-recv", Code: "RECV-01", Name: "Muelle", Type: "Receiving"}
	s.locations["loc-a"] = &entity.WarehouseLocation{ID: "loc-a", Code: "EST-A1", Name: "Estante A1", Type: "Storage"}
	s.locations["loc-b"] = &entity.WarehouseLocation{ID: "loc-b", Code: "EST-B1", Name: "Estante B1", Type: "Storage"}

	tx := &fakeTxRunner{s: s}
	invRepo := &fakeInventoryRepo{s: s}
	return &fixture{
		store:       s,
		receivingUC: appinv.NewReceivingUseCase(tx, &fakeReceiptRepo{s: s}, &fakeProductRepo{s: s}, &fakeSupplierRepo{s: s}, &fakeLocationRepo{s: s}),
		allocUC:     appinv.NewAllocationUseCase(tx, &fakeProductRepo{s: s}),
		orderUC:     appinv.NewOrderUseCase(tx, &fakeOrderRepo{s: s}, &fakeProductRepo{s: s}),
		stockTakeUC: appinv.NewStockTakeUseCase(tx, &fakeStockTakeRepo{s: s}, invRepo),
		queryUC:     appinv.NewQueryUseCase(invRepo, &fakeMovementRepo{s: s}),
	}
}

// seedBalance siembra una fila de saldo directamente en el store.
func (f *fixture) seedBalance(id, productID string, lotID *string, locationID string, onHand, allocated int64, createdAt time.Time) {
	f.store.records[id] = &entity.InventoryRecord{
		ID:                id,
		ProductID:         productID,
		LotID:             lotID,
		LocationID:        locationID,
		QuantityOnHand:    onHand,
		QuantityAllocated: allocated,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func (f *fixture) balance(id string) *entity.InventoryRecord {
	return f.store.records[id]
}

func (f *fixture) movementsOfType(movType string) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range f.store.movements {
		if m.Type == movType {
			out = append(out, m)
		}
	}
	return out
}
