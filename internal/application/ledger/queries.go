package ledger

import (
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/access"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Queries expone las proyecciones de lectura del ledger, siempre filtradas
// por las bodegas visibles del actor.
type Queries struct {
	filter     *access.Filter
	inventory  repository.InventoryRepository
	operations repository.StockOperationRepository
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
}

// NewQueries construye el lado de lectura del ledger.
func NewQueries(
	filter *access.Filter,
	inventory repository.InventoryRepository,
	operations repository.StockOperationRepository,
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
) *Queries {
	return &Queries{
		filter:     filter,
		inventory:  inventory,
		operations: operations,
		products:   products,
		warehouses: warehouses,
	}
}

// ListInventory devuelve el inventario de las bodegas visibles del actor.
// Para un actor sin bodegas visibles la lista es vacía, no un error.
func (q *Queries) ListInventory(actor access.Actor) ([]dto.InventoryRecordResponse, error) {
	ids, err := q.filter.VisibleWarehouses(actor, access.View)
	if err != nil {
		return nil, err
	}
	rows, err := q.inventory.List(ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toInventoryResponse(row))
	}
	return out, nil
}

// ListWarehouseInventory devuelve el inventario de una bodega concreta.
// Exige capacidad de vista sobre esa bodega.
func (q *Queries) ListWarehouseInventory(actor access.Actor, warehouseID int64) ([]dto.InventoryRecordResponse, error) {
	ok, err := q.filter.Can(actor, warehouseID, access.View)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: sin permiso de vista sobre la bodega %d", domain.ErrForbidden, warehouseID)
	}
	if _, err := q.warehouses.GetActiveByID(warehouseID); err != nil {
		return nil, err
	}
	rows, err := q.inventory.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toInventoryResponse(row))
	}
	return out, nil
}

// WarehousesWithStock devuelve las bodegas con stock positivo de un producto,
// restringidas a las bodegas donde el actor puede editar (es la consulta
// previa a una salida: elegir desde dónde emitir).
func (q *Queries) WarehousesWithStock(actor access.Actor, productID int64) ([]dto.WarehouseStockInfoResponse, error) {
	if _, err := q.products.GetActiveByID(productID); err != nil {
		return nil, err
	}
	ids, err := q.filter.VisibleWarehouses(actor, access.Edit)
	if err != nil {
		return nil, err
	}
	rows, err := q.inventory.WarehousesWithStock(productID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseStockInfoResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.WarehouseStockInfoResponse{
			WarehouseID:   row.WarehouseID,
			WarehouseName: row.WarehouseName,
			Quantity:      row.Quantity,
		})
	}
	return out, nil
}

// ListOperations devuelve el historial de operaciones de las bodegas donde el
// actor puede ver o editar, con filtros opcionales de rango y tipo.
func (q *Queries) ListOperations(actor access.Actor, query dto.OperationHistoryQuery) ([]dto.StockOperationResponse, error) {
	if query.FromDate != nil && query.ToDate != nil && query.FromDate.After(*query.ToDate) {
		return nil, fmt.Errorf("%w: fromDate posterior a toDate", domain.ErrInvalidInput)
	}
	ids, err := q.filter.VisibleWarehouses(actor, access.ViewOrEdit)
	if err != nil {
		return nil, err
	}
	rows, err := q.operations.List(repository.OperationFilter{
		WarehouseIDs:  ids,
		FromDate:      query.FromDate,
		ToDate:        query.ToDate,
		OperationType: query.OperationType,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockOperationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toOperationResponse(row))
	}
	return out, nil
}

func toInventoryResponse(row repository.InventoryRow) dto.InventoryRecordResponse {
	return dto.InventoryRecordResponse{
		ID:            row.ID,
		ProductID:     row.ProductID,
		ProductName:   row.ProductName,
		ProductCode:   row.ProductCode,
		WarehouseID:   row.WarehouseID,
		WarehouseName: row.WarehouseName,
		BrandID:       row.BrandID,
		BrandName:     row.BrandName,
		Quantity:      row.Quantity,
		LastUpdated:   row.LastUpdated,
	}
}

func toOperationResponse(row repository.StockOperationRow) dto.StockOperationResponse {
	return dto.StockOperationResponse{
		ID:             row.ID,
		ProductID:      row.ProductID,
		ProductName:    row.ProductName,
		ProductCode:    row.ProductCode,
		WarehouseID:    row.WarehouseID,
		WarehouseName:  row.WarehouseName,
		BrandID:        row.BrandID,
		BrandName:      row.BrandName,
		Quantity:       row.Quantity,
		OperationType:  row.OperationType,
		CostCenterID:   row.CostCenterID,
		CostCenterName: row.CostCenterName,
		Reason:         row.Reason,
		OperationDate:  row.OperationDate,
		CreatedBy:      row.CreatedBy,
		CreatedByName:  row.CreatedByName,
	}
}
