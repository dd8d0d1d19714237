package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/pkg/validate"
)

// ProductHandler maneja el CRUD de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, main_code, thresholds, brand_ids"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/Products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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

// GetByID godoc
// @Summary      Producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/Products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadBody(c)
	}
	resp, err := h.uc.GetByID(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar productos
// @Description  Productos activos; search filtra por nombre o código sin
//
//	distinguir mayúsculas ni acentos.
//
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Término de búsqueda"
// @Param        limit   query  int     false  "Tamaño de página (máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/Products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(page); err != nil {
		return respondValidation(c, err)
	}
	rows, err := h.uc.List(c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest true  "campos opcionales"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/Products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadBody(c)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return respondValidation(c, err)
	}
	resp, err := h.uc.Update(Actor(c), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Desactivar producto (soft delete)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/Products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadBody(c)
	}
	if err := h.uc.Delete(Actor(c), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto desactivado"})
}
