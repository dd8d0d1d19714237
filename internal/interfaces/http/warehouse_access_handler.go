package http

import (
	"github.com/gofiber/fiber/v2"
	appaccess "github.com/jhoicas/Almacen-api/internal/application/access"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/pkg/validate"
)

// WarehouseAccessHandler maneja la administración de accesos por bodega.
type WarehouseAccessHandler struct {
	uc *appaccess.UseCase
}

// NewWarehouseAccessHandler construye el handler.
func NewWarehouseAccessHandler(uc *appaccess.UseCase) *WarehouseAccessHandler {
	return &WarehouseAccessHandler{uc: uc}
}

// Create godoc
// @Summary      Crear acceso a bodega
// @Tags         warehouse-access
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseAccessRequest  true  "user_id, warehouse_id, can_view, can_edit"
// @Success      201   {object}  dto.WarehouseAccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/WarehouseAccess [post]
func (h *WarehouseAccessHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseAccessRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return respondValidation(c, err)
	}
	resp, err := h.uc.Create(Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary      Actualizar flags de un acceso
// @Tags         warehouse-access
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del acceso"
// @Param        body  body  dto.UpdateWarehouseAccessRequest  true  "can_view, can_edit"
// @Success      200   {object}  dto.WarehouseAccessResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/WarehouseAccess/{id} [put]
func (h *WarehouseAccessHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadBody(c)
	}
	var in dto.UpdateWarehouseAccessRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	resp, err := h.uc.Update(Actor(c), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar un acceso
// @Tags         warehouse-access
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del acceso"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/WarehouseAccess/{id} [delete]
func (h *WarehouseAccessHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadBody(c)
	}
	if err := h.uc.Delete(Actor(c), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "acceso eliminado"})
}

// ListByUser godoc
// @Summary      Accesos de un usuario
// @Tags         warehouse-access
// @Security     Bearer
// @Produce      json
// @Param        userId  path  int  true  "ID del usuario"
// @Success      200  {array}   dto.WarehouseAccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/WarehouseAccess/user/{userId} [get]
func (h *WarehouseAccessHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return respondBadBody(c)
	}
	rows, err := h.uc.ListByUser(int64(userID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// MyAccess godoc
// @Summary      Accesos del usuario autenticado
// @Tags         warehouse-access
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseAccessResponse
// @Router       /api/WarehouseAccess/my-access [get]
func (h *WarehouseAccessHandler) MyAccess(c *fiber.Ctx) error {
	rows, err := h.uc.MyAccess(Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}
