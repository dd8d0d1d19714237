package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/pkg/validate"
)

// StockOperationHandler maneja las mutaciones del ledger y su historial.
type StockOperationHandler struct {
	uc      *ledger.UseCase
	queries *ledger.Queries
}

// NewStockOperationHandler construye el handler.
func NewStockOperationHandler(uc *ledger.UseCase, queries *ledger.Queries) *StockOperationHandler {
	return &StockOperationHandler{uc: uc, queries: queries}
}

// Receive godoc
// @Summary      Entrada de stock
// @Tags         stock-operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "product_id, warehouse_id, brand_id, quantity, reason"
// @Success      201   {object}  dto.StockOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/StockOperations/receive [post]
func (h *StockOperationHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return respondValidation(c, err)
	}
	resp, err := h.uc.Receive(c.Context(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Issue godoc
// @Summary      Salida de stock
// @Description  Emite stock hacia un centro de costo. Rechaza la operación si la
//
//	cantidad disponible es menor que la solicitada.
//
// @Tags         stock-operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueStockRequest  true  "product_id, warehouse_id, brand_id, quantity, cost_center_id, reason"
// @Success      201   {object}  dto.StockOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/StockOperations/issue [post]
func (h *StockOperationHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueStockRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return respondValidation(c, err)
	}
	resp, err := h.uc.Issue(c.Context(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Historial de operaciones
// @Description  Operaciones de las bodegas visibles, con filtros opcionales de
//
//	rango de fechas y tipo.
//
// @Tags         stock-operations
// @Security     Bearer
// @Produce      json
// @Param        fromDate       query  string  false  "Fecha inicial (RFC 3339)"
// @Param        toDate         query  string  false  "Fecha final (RFC 3339)"
// @Param        operationType  query  string  false  "ISSUE | RECEIVE | ADJUST"
// @Success      200  {array}   dto.StockOperationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/StockOperations [get]
func (h *StockOperationHandler) List(c *fiber.Ctx) error {
	query := dto.OperationHistoryQuery{OperationType: c.Query("operationType")}
	if raw := c.Query("fromDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return respondBadBody(c)
		}
		query.FromDate = &t
	}
	if raw := c.Query("toDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return respondBadBody(c)
		}
		query.ToDate = &t
	}
	if err := validate.Struct(query); err != nil {
		return respondValidation(c, err)
	}
	rows, err := h.queries.ListOperations(Actor(c), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// parseDate acepta RFC 3339 completo o solo fecha (2006-01-02).
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
