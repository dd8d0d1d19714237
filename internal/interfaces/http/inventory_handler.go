package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/pkg/validate"
)

// InventoryHandler maneja las consultas de inventario y el ajuste administrativo.
type InventoryHandler struct {
	uc      *ledger.UseCase
	queries *ledger.Queries
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase, queries *ledger.Queries) *InventoryHandler {
	return &InventoryHandler{uc: uc, queries: queries}
}

// List godoc
// @Summary      Inventario visible
// @Description  Filas de inventario de las bodegas visibles para el usuario.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryRecordResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/Inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	rows, err := h.queries.ListInventory(Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// ListByWarehouse godoc
// @Summary      Inventario de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la bodega"
// @Success      200  {array}   dto.InventoryRecordResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/Inventory/warehouse/{id} [get]
func (h *InventoryHandler) ListByWarehouse(c *fiber.Ctx) error {
	warehouseID, err := c.ParamsInt("id")
	if err != nil {
		return respondBadBody(c)
	}
	rows, err := h.queries.ListWarehouseInventory(Actor(c), int64(warehouseID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// WarehousesWithStock godoc
// @Summary      Bodegas con stock de un producto
// @Description  Bodegas editables por el usuario con cantidad positiva del producto
//
//	(consulta previa a una salida).
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {array}   dto.WarehouseStockInfoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/Inventory/warehouses-with-stock/{productId} [get]
func (h *InventoryHandler) WarehousesWithStock(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil {
		return respondBadBody(c)
	}
	rows, err := h.queries.WarehousesWithStock(Actor(c), int64(productID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// Adjust godoc
// @Summary      Ajuste administrativo de inventario
// @Description  Fija la cantidad de la tripleta producto+bodega+marca en un valor
//
//	absoluto y deja una entrada ADJUST en el historial.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "product_id, warehouse_id, brand_id, new_quantity, reason"
// @Success      200   {object}  dto.StockOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/Inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return respondValidation(c, err)
	}
	resp, err := h.uc.Adjust(c.Context(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
