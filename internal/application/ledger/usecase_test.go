package ledger

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/access"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

type triple struct{ product, warehouse, brand int64 }

// fakeInventoryRepo implementación en memoria del estado del ledger.
// Cuenta las escrituras absolutas (upserts) y aditivas (adds) para poder
// afirmar qué camino de escritura usó cada mutación.
type fakeInventoryRepo struct {
	records map[triple]*entity.InventoryRecord
	nextID  int64
	upserts int
	adds    int
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{records: make(map[triple]*entity.InventoryRecord), nextID: 1}
}

func (r *fakeInventoryRepo) Get(productID, warehouseID, brandID int64) (*entity.InventoryRecord, error) {
	rec, ok := r.records[triple{productID, warehouseID, brandID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeInventoryRepo) GetForUpdate(productID, warehouseID, brandID int64) (*entity.InventoryRecord, error) {
	rec, ok := r.records[triple{productID, warehouseID, brandID}]
	if !ok {
		return &entity.InventoryRecord{ProductID: productID, WarehouseID: warehouseID, BrandID: brandID}, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeInventoryRepo) Upsert(record *entity.InventoryRecord) error {
	r.upserts++
	key := triple{record.ProductID, record.WarehouseID, record.BrandID}
	if existing, ok := r.records[key]; ok {
		existing.Quantity = record.Quantity
		existing.LastUpdated = record.LastUpdated
		record.ID = existing.ID
		return nil
	}
	record.ID = r.nextID
	r.nextID++
	cp := *record
	r.records[key] = &cp
	return nil
}

func (r *fakeInventoryRepo) AddQuantity(productID, warehouseID, brandID, delta int64) (*entity.InventoryRecord, error) {
	r.adds++
	key := triple{productID, warehouseID, brandID}
	rec, ok := r.records[key]
	if !ok {
		rec = &entity.InventoryRecord{ID: r.nextID, ProductID: productID, WarehouseID: warehouseID, BrandID: brandID}
		r.nextID++
		r.records[key] = rec
	}
	rec.Quantity += delta
	rec.LastUpdated = time.Now().UTC()
	cp := *rec
	return &cp, nil
}

func (r *fakeInventoryRepo) List(warehouseIDs []int64) ([]repository.InventoryRow, error) {
	var rows []repository.InventoryRow
	for _, rec := range r.records {
		if !warehouseVisible(rec.WarehouseID, warehouseIDs) {
			continue
		}
		rows = append(rows, repository.InventoryRow{
			ID:          rec.ID,
			ProductID:   rec.ProductID,
			WarehouseID: rec.WarehouseID,
			BrandID:     rec.BrandID,
			Quantity:    rec.Quantity,
			LastUpdated: rec.LastUpdated,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (r *fakeInventoryRepo) ListByWarehouse(warehouseID int64) ([]repository.InventoryRow, error) {
	return r.List([]int64{warehouseID})
}

func (r *fakeInventoryRepo) WarehousesWithStock(productID int64, warehouseIDs []int64) ([]repository.WarehouseStockRow, error) {
	var rows []repository.WarehouseStockRow
	for _, rec := range r.records {
		if rec.ProductID != productID || rec.Quantity <= 0 {
			continue
		}
		if !warehouseVisible(rec.WarehouseID, warehouseIDs) {
			continue
		}
		rows = append(rows, repository.WarehouseStockRow{WarehouseID: rec.WarehouseID, Quantity: rec.Quantity})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].WarehouseID < rows[j].WarehouseID })
	return rows, nil
}

func warehouseVisible(id int64, warehouseIDs []int64) bool {
	if warehouseIDs == nil {
		return true
	}
	for _, w := range warehouseIDs {
		if w == id {
			return true
		}
	}
	return false
}

// fakeOperationRepo historial append-only en memoria.
type fakeOperationRepo struct {
	ops    []*entity.StockOperation
	nextID int64
}

func newFakeOperationRepo() *fakeOperationRepo {
	return &fakeOperationRepo{nextID: 1}
}

func (r *fakeOperationRepo) Create(op *entity.StockOperation) error {
	op.ID = r.nextID
	r.nextID++
	cp := *op
	r.ops = append(r.ops, &cp)
	return nil
}

func (r *fakeOperationRepo) GetRow(id int64) (*repository.StockOperationRow, error) {
	for _, op := range r.ops {
		if op.ID == id {
			row := opToRow(op)
			return &row, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOperationRepo) List(filter repository.OperationFilter) ([]repository.StockOperationRow, error) {
	var rows []repository.StockOperationRow
	for _, op := range r.ops {
		if !warehouseVisible(op.WarehouseID, filter.WarehouseIDs) {
			continue
		}
		if filter.FromDate != nil && op.OperationDate.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && op.OperationDate.After(*filter.ToDate) {
			continue
		}
		if filter.OperationType != "" && op.OperationType != filter.OperationType {
			continue
		}
		rows = append(rows, opToRow(op))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

func (r *fakeOperationRepo) ListByTriple(productID, warehouseID, brandID int64) ([]*entity.StockOperation, error) {
	var out []*entity.StockOperation
	for _, op := range r.ops {
		if op.ProductID == productID && op.WarehouseID == warehouseID && op.BrandID == brandID {
			cp := *op
			out = append(out, &cp)
		}
	}
	return out, nil
}

func opToRow(op *entity.StockOperation) repository.StockOperationRow {
	return repository.StockOperationRow{
		ID:            op.ID,
		ProductID:     op.ProductID,
		WarehouseID:   op.WarehouseID,
		BrandID:       op.BrandID,
		Quantity:      op.Quantity,
		OperationType: op.OperationType,
		CostCenterID:  op.CostCenterID,
		Reason:        op.Reason,
		OperationDate: op.OperationDate,
		CreatedBy:     op.CreatedBy,
	}
}

// fakeProductRepo productos en memoria; el rollup se recalcula re-sumando
// el inventario, igual que la implementación real.
type fakeProductRepo struct {
	products map[int64]*entity.Product
	inv      *fakeInventoryRepo
}

func newFakeProductRepo(inv *fakeInventoryRepo) *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*entity.Product), inv: inv}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetActiveByID(id int64) (*entity.Product, error) {
	p, err := r.GetByID(id)
	if err != nil || !p.IsActive {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) SoftDelete(id int64) error {
	p, err := r.GetByID(id)
	if err != nil {
		return err
	}
	p.IsActive = false
	return nil
}

func (r *fakeProductRepo) RecomputeTotalQuantity(productID int64) error {
	p, err := r.GetByID(productID)
	if err != nil {
		return err
	}
	var total int64
	for _, rec := range r.inv.records {
		if rec.ProductID == productID {
			total += rec.Quantity
		}
	}
	p.TotalQuantity = total
	return nil
}

func (r *fakeProductRepo) ListBelowReorderPoint() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsActive && p.TotalQuantity <= p.ReorderPoint {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeWarehouseRepo bodegas en memoria.
type fakeWarehouseRepo struct {
	warehouses map[int64]*entity.Warehouse
}

func (r *fakeWarehouseRepo) GetActiveByID(id int64) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok || !w.IsActive {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (r *fakeWarehouseRepo) ListActive() ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

// fakeBrandRepo marcas en memoria.
type fakeBrandRepo struct {
	brands map[int64]*entity.Brand
}

func (r *fakeBrandRepo) GetActiveByID(id int64) (*entity.Brand, error) {
	b, ok := r.brands[id]
	if !ok || !b.IsActive {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (r *fakeBrandRepo) ListActive() ([]*entity.Brand, error) { return nil, nil }

func (r *fakeBrandRepo) LinkProduct(productID, brandID int64) error { return nil }

func (r *fakeBrandRepo) ListByProduct(productID int64) ([]*entity.Brand, error) { return nil, nil }

// fakeCostCenterRepo centros de costo en memoria.
type fakeCostCenterRepo struct {
	centers map[int64]*entity.CostCenter
}

func (r *fakeCostCenterRepo) GetActiveByID(id int64) (*entity.CostCenter, error) {
	c, ok := r.centers[id]
	if !ok || !c.IsActive {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCostCenterRepo) ListActive() ([]*entity.CostCenter, error) { return nil, nil }

// fakeAccessRepo accesos por bodega en memoria.
type fakeAccessRepo struct {
	rows   []*entity.WarehouseAccess
	nextID int64
}

func (r *fakeAccessRepo) Create(a *entity.WarehouseAccess) error {
	for _, row := range r.rows {
		if row.UserID == a.UserID && row.WarehouseID == a.WarehouseID {
			return domain.ErrDuplicateAccess
		}
	}
	r.nextID++
	a.ID = r.nextID
	cp := *a
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeAccessRepo) GetByID(id int64) (*entity.WarehouseAccess, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeAccessRepo) GetByUserAndWarehouse(userID, warehouseID int64) (*entity.WarehouseAccess, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.WarehouseID == warehouseID {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeAccessRepo) Update(a *entity.WarehouseAccess) error { return nil }

func (r *fakeAccessRepo) Delete(id int64) error { return nil }

func (r *fakeAccessRepo) ListByUser(userID int64) ([]*entity.WarehouseAccess, error) {
	var out []*entity.WarehouseAccess
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeAccessRepo) ListRowsByUser(userID int64) ([]repository.AccessRow, error) {
	return nil, nil
}

// fakeRecorder acumula entradas de auditoría sin persistirlas.
type fakeRecorder struct {
	entries []audit.Entry
}

func (r *fakeRecorder) Record(entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

// fakeTxRunner ejecuta fn directamente sobre los fakes compartidos. Los casos
// de uso devuelven el error antes de escribir nada cuando la transacción
// aborta, así que las aserciones de "sin efectos" siguen siendo válidas.
type fakeTxRunner struct {
	inv      *fakeInventoryRepo
	ops      *fakeOperationRepo
	products *fakeProductRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	inv repository.InventoryRepository,
	ops repository.StockOperationRepository,
	products repository.ProductRepository,
) error) error {
	return fn(t.inv, t.ops, t.products)
}

type ledgerFixture struct {
	uc       *UseCase
	queries  *Queries
	inv      *fakeInventoryRepo
	ops      *fakeOperationRepo
	products *fakeProductRepo
	accesses *fakeAccessRepo
	recorder *fakeRecorder
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	inv := newFakeInventoryRepo()
	ops := newFakeOperationRepo()
	products := newFakeProductRepo(inv)
	warehouses := &fakeWarehouseRepo{warehouses: map[int64]*entity.Warehouse{
		1: {ID: 1, Name: "Bodega Central", IsActive: true},
		2: {ID: 2, Name: "Bodega Norte", IsActive: true},
	}}
	brands := &fakeBrandRepo{brands: map[int64]*entity.Brand{
		1: {ID: 1, Name: "Genérica", IsActive: true},
	}}
	centers := &fakeCostCenterRepo{centers: map[int64]*entity.CostCenter{
		1: {ID: 1, Name: "Mantenimiento", IsActive: true},
	}}
	accesses := &fakeAccessRepo{}
	recorder := &fakeRecorder{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	require.NoError(t, products.Create(&entity.Product{ID: 1, Name: "Tornillo M8", MainCode: "TOR-M8", IsActive: true}))

	filter := access.NewFilter(accesses)
	tx := &fakeTxRunner{inv: inv, ops: ops, products: products}
	uc := NewUseCase(tx, filter, products, warehouses, brands, centers, ops, recorder, log)
	queries := NewQueries(filter, inv, ops, products, warehouses)

	return &ledgerFixture{
		uc:       uc,
		queries:  queries,
		inv:      inv,
		ops:      ops,
		products: products,
		accesses: accesses,
		recorder: recorder,
	}
}

func (f *ledgerFixture) quantity(t *testing.T, productID, warehouseID, brandID int64) int64 {
	t.Helper()
	rec, ok := f.inv.records[triple{productID, warehouseID, brandID}]
	if !ok {
		return 0
	}
	return rec.Quantity
}

var adminActor = access.Actor{UserID: 99, Role: entity.RoleAdmin}

func TestLedgerReceiveIssueScenario(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	// Receive 10
	resp, err := f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{
		ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 10,
	})
	require.NoError(t, err, "La entrada inicial debe aceptarse")
	assert.Equal(t, entity.OperationRECEIVE, resp.OperationType)
	assert.EqualValues(t, 10, f.quantity(t, 1, 1, 1), "La cantidad debe ser 10 tras la entrada")
	product, _ := f.products.GetByID(1)
	assert.EqualValues(t, 10, product.TotalQuantity, "El rollup debe recalcularse en la misma operación")
	assert.Len(t, f.ops.ops, 1)

	// Issue 4
	resp, err = f.uc.Issue(ctx, adminActor, dto.IssueStockRequest{
		ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 4, CostCenterID: 1,
	})
	require.NoError(t, err, "La salida de 4 unidades debe aceptarse")
	require.NotNil(t, resp.CostCenterID)
	assert.EqualValues(t, 1, *resp.CostCenterID)
	assert.EqualValues(t, 6, f.quantity(t, 1, 1, 1), "La cantidad debe quedar en 6")
	product, _ = f.products.GetByID(1)
	assert.EqualValues(t, 6, product.TotalQuantity)
	assert.Len(t, f.ops.ops, 2)

	// Issue 10 sobre 6 disponibles: rechazo sin efectos
	_, err = f.uc.Issue(ctx, adminActor, dto.IssueStockRequest{
		ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 10, CostCenterID: 1,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "Una salida mayor que el stock debe rechazarse")
	assert.EqualValues(t, 6, f.quantity(t, 1, 1, 1), "La cantidad no debe cambiar tras el rechazo")
	product, _ = f.products.GetByID(1)
	assert.EqualValues(t, 6, product.TotalQuantity, "El rollup no debe cambiar tras el rechazo")
	assert.Len(t, f.ops.ops, 2, "El rechazo no debe dejar entrada en el historial")
}

func TestLedgerReconstruction(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 25})
	require.NoError(t, err)
	_, err = f.uc.Issue(ctx, adminActor, dto.IssueStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 7, CostCenterID: 1})
	require.NoError(t, err)
	_, err = f.uc.Adjust(ctx, adminActor, dto.AdjustInventoryRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, NewQuantity: 30, Reason: "conteo físico"})
	require.NoError(t, err)
	_, err = f.uc.Issue(ctx, adminActor, dto.IssueStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 5, CostCenterID: 1})
	require.NoError(t, err)

	// Reproducir el historial desde cero debe reconstruir la cantidad actual.
	ops, err := f.ops.ListByTriple(1, 1, 1)
	require.NoError(t, err)
	var replayed int64
	for _, op := range ops {
		switch op.OperationType {
		case entity.OperationRECEIVE:
			replayed += op.Quantity
		case entity.OperationISSUE:
			replayed -= op.Quantity
		case entity.OperationADJUST:
			replayed = op.Quantity
		}
	}
	assert.EqualValues(t, 25, replayed, "La reproducción del historial debe dar 25")
	assert.EqualValues(t, replayed, f.quantity(t, 1, 1, 1), "El historial reproducido debe coincidir con el stock actual")
}

func TestLedgerForbiddenWritesNothing(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	// Almacenista con acceso de solo vista a la bodega 1.
	require.NoError(t, f.accesses.Create(&entity.WarehouseAccess{UserID: 5, WarehouseID: 1, CanView: true, CanEdit: false}))
	storekeeper := access.Actor{UserID: 5, Role: entity.RoleStorekeeper}

	_, err := f.uc.Receive(ctx, storekeeper, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 10})
	require.ErrorIs(t, err, domain.ErrForbidden, "Sin CanEdit la entrada debe rechazarse")

	_, err = f.uc.Issue(ctx, storekeeper, dto.IssueStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 1, CostCenterID: 1})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Adjust(ctx, storekeeper, dto.AdjustInventoryRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, NewQuantity: 5})
	require.ErrorIs(t, err, domain.ErrForbidden)

	assert.Empty(t, f.ops.ops, "Un rechazo de permisos no debe dejar operaciones")
	assert.Empty(t, f.inv.records, "Un rechazo de permisos no debe crear filas de inventario")
}

func TestLedgerViewerCannotWrite(t *testing.T) {
	f := newLedgerFixture(t)

	viewer := access.Actor{UserID: 7, Role: entity.RoleViewer}
	_, err := f.uc.Receive(context.Background(), viewer, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrForbidden, "El rol Viewer nunca puede escribir en el ledger")
}

func TestLedgerAdjustRejectsNegative(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.uc.Adjust(context.Background(), adminActor, dto.AdjustInventoryRequest{
		ProductID: 1, WarehouseID: 1, BrandID: 1, NewQuantity: -3,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "Un ajuste negativo debe rechazarse")
	assert.Empty(t, f.ops.ops)
}

func TestLedgerAdjustLeavesAuditTrail(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 8})
	require.NoError(t, err)
	resp, err := f.uc.Adjust(ctx, adminActor, dto.AdjustInventoryRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, NewQuantity: 12, Reason: "conteo"})
	require.NoError(t, err)

	assert.Equal(t, entity.OperationADJUST, resp.OperationType)
	assert.EqualValues(t, 12, resp.Quantity, "La entrada ADJUST lleva la cantidad resultante")
	assert.EqualValues(t, 12, f.quantity(t, 1, 1, 1))
	require.Len(t, f.ops.ops, 2, "El ajuste debe quedar en el historial")
	require.NotEmpty(t, f.recorder.entries, "El ajuste debe quedar en el audit trail")
	last := f.recorder.entries[len(f.recorder.entries)-1]
	assert.Equal(t, "StockOperations", last.TableName)
	assert.Equal(t, entity.AuditActionCreate, last.Action)
}

func TestLedgerIssueValidatesReferences(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.Issue(ctx, adminActor, dto.IssueStockRequest{ProductID: 999, WarehouseID: 1, BrandID: 1, Quantity: 1, CostCenterID: 1})
	require.ErrorIs(t, err, domain.ErrNotFound, "Producto inexistente debe dar NOT_FOUND")

	_, err = f.uc.Issue(ctx, adminActor, dto.IssueStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 1, CostCenterID: 999})
	require.ErrorIs(t, err, domain.ErrNotFound, "Centro de costo inexistente debe dar NOT_FOUND")

	_, err = f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 999, BrandID: 1, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrNotFound, "Bodega inexistente debe dar NOT_FOUND")
}

func TestLedgerQueriesScopedByAccess(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 10})
	require.NoError(t, err)
	_, err = f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 2, BrandID: 1, Quantity: 20})
	require.NoError(t, err)

	// Almacenista con vista solo sobre la bodega 2.
	require.NoError(t, f.accesses.Create(&entity.WarehouseAccess{UserID: 5, WarehouseID: 2, CanView: true, CanEdit: true}))
	storekeeper := access.Actor{UserID: 5, Role: entity.RoleStorekeeper}

	rows, err := f.queries.ListInventory(storekeeper)
	require.NoError(t, err)
	require.Len(t, rows, 1, "El almacenista solo ve sus bodegas")
	assert.EqualValues(t, 2, rows[0].WarehouseID)

	_, err = f.queries.ListWarehouseInventory(storekeeper, 1)
	require.ErrorIs(t, err, domain.ErrForbidden, "La bodega 1 no es visible para el almacenista")

	rows, err = f.queries.ListWarehouseInventory(storekeeper, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	history, err := f.queries.ListOperations(storekeeper, dto.OperationHistoryQuery{})
	require.NoError(t, err)
	require.Len(t, history, 1, "El historial también se filtra por bodegas visibles")
	assert.EqualValues(t, 2, history[0].WarehouseID)

	all, err := f.queries.ListOperations(adminActor, dto.OperationHistoryQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2, "El Admin ve todas las operaciones")
}

func TestLedgerOperationHistoryFilters(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 10})
	require.NoError(t, err)
	_, err = f.uc.Issue(ctx, adminActor, dto.IssueStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 3, CostCenterID: 1})
	require.NoError(t, err)

	issues, err := f.queries.ListOperations(adminActor, dto.OperationHistoryQuery{OperationType: entity.OperationISSUE})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, entity.OperationISSUE, issues[0].OperationType)

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)
	_, err = f.queries.ListOperations(adminActor, dto.OperationHistoryQuery{FromDate: &future, ToDate: &past})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "Rango invertido debe rechazarse")

	none, err := f.queries.ListOperations(adminActor, dto.OperationHistoryQuery{FromDate: &future})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLedgerWarehousesWithStockScopedByEdit(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 10})
	require.NoError(t, err)
	_, err = f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 2, BrandID: 1, Quantity: 5})
	require.NoError(t, err)

	// Vista sobre ambas bodegas, edición solo sobre la 1.
	require.NoError(t, f.accesses.Create(&entity.WarehouseAccess{UserID: 5, WarehouseID: 1, CanView: true, CanEdit: true}))
	require.NoError(t, f.accesses.Create(&entity.WarehouseAccess{UserID: 5, WarehouseID: 2, CanView: true, CanEdit: false}))
	storekeeper := access.Actor{UserID: 5, Role: entity.RoleStorekeeper}

	rows, err := f.queries.WarehousesWithStock(storekeeper, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1, "Solo las bodegas editables son origen válido de una salida")
	assert.EqualValues(t, 1, rows[0].WarehouseID)

	// El Viewer no edita ninguna bodega: lista vacía, no error.
	viewer := access.Actor{UserID: 7, Role: entity.RoleViewer}
	rows, err = f.queries.WarehousesWithStock(viewer, 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLedgerConcurrentIssuesNeverOversell(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 10})
	require.NoError(t, err)

	// Diez salidas de 3 unidades sobre 10 disponibles: solo tres caben.
	var accepted, rejected int
	for i := 0; i < 10; i++ {
		_, err := f.uc.Issue(ctx, adminActor, dto.IssueStockRequest{
			ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 3, CostCenterID: 1,
			Reason: fmt.Sprintf("intento %d", i),
		})
		if err == nil {
			accepted++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			rejected++
		}
	}
	assert.Equal(t, 3, accepted)
	assert.Equal(t, 7, rejected)
	assert.EqualValues(t, 1, f.quantity(t, 1, 1, 1), "Nunca debe quedar cantidad negativa")
}

func TestLedgerFirstReceivesAccumulate(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	// Dos entradas sobre una tripleta sin fila previa. El incremento debe
	// resolverse en el upsert aditivo, nunca como escritura absoluta de una
	// cantidad leída antes: dos primeras entradas concurrentes se pisarían.
	_, err := f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 5})
	require.NoError(t, err)
	_, err = f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 7})
	require.NoError(t, err)

	assert.EqualValues(t, 12, f.quantity(t, 1, 1, 1), "Las entradas deben acumularse")
	assert.Equal(t, 2, f.inv.adds, "Cada entrada debe pasar por el camino aditivo")
	assert.Zero(t, f.inv.upserts, "Una entrada nunca debe fijar una cantidad absoluta")

	product, _ := f.products.GetByID(1)
	assert.EqualValues(t, 12, product.TotalQuantity)

	// El historial reproducido coincide con el estado actual.
	ops, err := f.ops.ListByTriple(1, 1, 1)
	require.NoError(t, err)
	var replayed int64
	for _, op := range ops {
		require.Equal(t, entity.OperationRECEIVE, op.OperationType)
		replayed += op.Quantity
	}
	assert.EqualValues(t, 12, replayed, "El historial debe sumar lo mismo que el stock")
}

func TestLedgerListInventoryIsIdempotent(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 1, BrandID: 1, Quantity: 10})
	require.NoError(t, err)
	_, err = f.uc.Receive(ctx, adminActor, dto.ReceiveStockRequest{ProductID: 1, WarehouseID: 2, BrandID: 1, Quantity: 4})
	require.NoError(t, err)

	// Dos lecturas consecutivas sin mutaciones intermedias devuelven lo mismo.
	first, err := f.queries.ListInventory(adminActor)
	require.NoError(t, err)
	second, err := f.queries.ListInventory(adminActor)
	require.NoError(t, err)
	assert.Equal(t, first, second, "Leer el inventario no debe alterar el estado")
	assert.Len(t, f.ops.ops, 2, "Las lecturas no deben dejar rastro en el historial")
}
