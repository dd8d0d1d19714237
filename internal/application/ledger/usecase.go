package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/access"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// UseCase orquesta las mutaciones del ledger de stock.
type UseCase struct {
	tx          TxRunner
	filter      *access.Filter
	products    repository.ProductRepository
	warehouses  repository.WarehouseRepository
	brands      repository.BrandRepository
	costCenters repository.CostCenterRepository
	operations  repository.StockOperationRepository
	recorder    audit.Recorder
	log         *logger.Logger
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(
	tx TxRunner,
	filter *access.Filter,
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	brands repository.BrandRepository,
	costCenters repository.CostCenterRepository,
	operations repository.StockOperationRepository,
	recorder audit.Recorder,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:          tx,
		filter:      filter,
		products:    products,
		warehouses:  warehouses,
		brands:      brands,
		costCenters: costCenters,
		operations:  operations,
		recorder:    recorder,
		log:         log,
	}
}

// Receive registra una entrada de stock para la tripleta producto+bodega+marca.
// Crea la fila de inventario si no existe, suma la cantidad, agrega la entrada
// RECEIVE al historial y recalcula el rollup del producto, todo en una
// transacción. La suma es un upsert aditivo en una sola sentencia: dos primeras
// entradas concurrentes sobre la misma tripleta se acumulan, no se pisan.
func (uc *UseCase) Receive(ctx context.Context, actor access.Actor, req dto.ReceiveStockRequest) (*dto.StockOperationResponse, error) {
	if err := uc.checkEdit(actor, req.WarehouseID); err != nil {
		return nil, err
	}
	if err := uc.validateTriple(req.ProductID, req.WarehouseID, req.BrandID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	op := &entity.StockOperation{
		ProductID:     req.ProductID,
		WarehouseID:   req.WarehouseID,
		BrandID:       req.BrandID,
		Quantity:      req.Quantity,
		OperationType: entity.OperationRECEIVE,
		Reason:        req.Reason,
		OperationDate: now,
		CreatedBy:     actor.UserID,
		CreatedDate:   now,
	}

	err := uc.tx.Run(ctx, func(inv repository.InventoryRepository, ops repository.StockOperationRepository, products repository.ProductRepository) error {
		if _, err := inv.AddQuantity(req.ProductID, req.WarehouseID, req.BrandID, req.Quantity); err != nil {
			return err
		}
		if err := ops.Create(op); err != nil {
			return err
		}
		return products.RecomputeTotalQuantity(req.ProductID)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("product_id", req.ProductID).
		Int64("warehouse_id", req.WarehouseID).
		Int64("brand_id", req.BrandID).
		Int64("quantity", req.Quantity).
		Int64("user_id", actor.UserID).
		Msg("Entrada de stock registrada")
	uc.recordOperation(actor, op)

	return uc.operationResponse(op.ID)
}

// Issue registra una salida de stock. El chequeo de disponibilidad y el
// decremento ocurren bajo el bloqueo de fila de GetForUpdate, de modo que
// dos salidas concurrentes sobre la misma tripleta se serializan y nunca
// dejan la cantidad negativa.
func (uc *UseCase) Issue(ctx context.Context, actor access.Actor, req dto.IssueStockRequest) (*dto.StockOperationResponse, error) {
	if err := uc.checkEdit(actor, req.WarehouseID); err != nil {
		return nil, err
	}
	if err := uc.validateTriple(req.ProductID, req.WarehouseID, req.BrandID); err != nil {
		return nil, err
	}
	if _, err := uc.costCenters.GetActiveByID(req.CostCenterID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	costCenterID := req.CostCenterID
	op := &entity.StockOperation{
		ProductID:     req.ProductID,
		WarehouseID:   req.WarehouseID,
		BrandID:       req.BrandID,
		Quantity:      req.Quantity,
		OperationType: entity.OperationISSUE,
		CostCenterID:  &costCenterID,
		Reason:        req.Reason,
		OperationDate: now,
		CreatedBy:     actor.UserID,
		CreatedDate:   now,
	}

	err := uc.tx.Run(ctx, func(inv repository.InventoryRepository, ops repository.StockOperationRepository, products repository.ProductRepository) error {
		record, err := inv.GetForUpdate(req.ProductID, req.WarehouseID, req.BrandID)
		if err != nil {
			return err
		}
		if record.Quantity < req.Quantity {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, record.Quantity, req.Quantity)
		}
		record.Quantity -= req.Quantity
		record.LastUpdated = now
		if err := inv.Upsert(record); err != nil {
			return err
		}
		if err := ops.Create(op); err != nil {
			return err
		}
		return products.RecomputeTotalQuantity(req.ProductID)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("product_id", req.ProductID).
		Int64("warehouse_id", req.WarehouseID).
		Int64("brand_id", req.BrandID).
		Int64("quantity", req.Quantity).
		Int64("cost_center_id", req.CostCenterID).
		Int64("user_id", actor.UserID).
		Msg("Salida de stock registrada")
	uc.recordOperation(actor, op)

	return uc.operationResponse(op.ID)
}

// Adjust fija la cantidad de la tripleta en un valor absoluto. Deja rastro:
// agrega una entrada ADJUST al historial con la cantidad resultante, de modo
// que el ajuste es auditable y reproducible igual que Receive e Issue.
// Las cantidades negativas se rechazan.
func (uc *UseCase) Adjust(ctx context.Context, actor access.Actor, req dto.AdjustInventoryRequest) (*dto.StockOperationResponse, error) {
	if req.NewQuantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad ajustada no puede ser negativa", domain.ErrInvalidInput)
	}
	if err := uc.checkEdit(actor, req.WarehouseID); err != nil {
		return nil, err
	}
	if err := uc.validateTriple(req.ProductID, req.WarehouseID, req.BrandID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	op := &entity.StockOperation{
		ProductID:     req.ProductID,
		WarehouseID:   req.WarehouseID,
		BrandID:       req.BrandID,
		Quantity:      req.NewQuantity,
		OperationType: entity.OperationADJUST,
		Reason:        req.Reason,
		OperationDate: now,
		CreatedBy:     actor.UserID,
		CreatedDate:   now,
	}

	var previous int64
	err := uc.tx.Run(ctx, func(inv repository.InventoryRepository, ops repository.StockOperationRepository, products repository.ProductRepository) error {
		record, err := inv.GetForUpdate(req.ProductID, req.WarehouseID, req.BrandID)
		if err != nil {
			return err
		}
		previous = record.Quantity
		record.Quantity = req.NewQuantity
		record.LastUpdated = now
		if err := inv.Upsert(record); err != nil {
			return err
		}
		if err := ops.Create(op); err != nil {
			return err
		}
		return products.RecomputeTotalQuantity(req.ProductID)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("product_id", req.ProductID).
		Int64("warehouse_id", req.WarehouseID).
		Int64("brand_id", req.BrandID).
		Int64("previous_quantity", previous).
		Int64("new_quantity", req.NewQuantity).
		Int64("user_id", actor.UserID).
		Msg("Ajuste de inventario registrado")
	uc.recorder.Record(audit.Entry{
		TableName: "StockOperations",
		RecordID:  op.ID,
		Action:    entity.AuditActionCreate,
		OldValues: map[string]interface{}{"quantity": previous},
		NewValues: map[string]interface{}{
			"operation_type": op.OperationType,
			"quantity":       op.Quantity,
			"product_id":     op.ProductID,
			"warehouse_id":   op.WarehouseID,
			"brand_id":       op.BrandID,
		},
		Description: "Ajuste de inventario",
		UserID:      actor.UserID,
		IPAddress:   actor.IP,
	})

	return uc.operationResponse(op.ID)
}

// checkEdit valida la capacidad de edición del actor sobre la bodega.
func (uc *UseCase) checkEdit(actor access.Actor, warehouseID int64) error {
	ok, err := uc.filter.Can(actor, warehouseID, access.Edit)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: sin permiso de edición sobre la bodega %d", domain.ErrForbidden, warehouseID)
	}
	return nil
}

// validateTriple verifica que producto, bodega y marca existan y estén activos.
func (uc *UseCase) validateTriple(productID, warehouseID, brandID int64) error {
	if _, err := uc.products.GetActiveByID(productID); err != nil {
		return err
	}
	if _, err := uc.warehouses.GetActiveByID(warehouseID); err != nil {
		return err
	}
	if _, err := uc.brands.GetActiveByID(brandID); err != nil {
		return err
	}
	return nil
}

// recordOperation audita la operación ya confirmada (best-effort).
func (uc *UseCase) recordOperation(actor access.Actor, op *entity.StockOperation) {
	uc.recorder.Record(audit.Entry{
		TableName: "StockOperations",
		RecordID:  op.ID,
		Action:    entity.AuditActionCreate,
		NewValues: map[string]interface{}{
			"operation_type": op.OperationType,
			"quantity":       op.Quantity,
			"product_id":     op.ProductID,
			"warehouse_id":   op.WarehouseID,
			"brand_id":       op.BrandID,
		},
		UserID:    actor.UserID,
		IPAddress: actor.IP,
	})
}

func (uc *UseCase) operationResponse(id int64) (*dto.StockOperationResponse, error) {
	row, err := uc.operations.GetRow(id)
	if err != nil {
		return nil, err
	}
	resp := toOperationResponse(*row)
	return &resp, nil
}
