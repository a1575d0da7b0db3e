package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
)

// InventoryHandler maneja las consultas de inventario: stock bajo, reposición y valuación (protegido).
type InventoryHandler struct {
	query         *inventory.QueryUseCase
	replenishment *inventory.ReplenishmentUseCase
	report        *inventory.ReportUseCase
	products      *usecase.ProductUseCase
	defaultMethod kardex.Method
}

// NewInventoryHandler construye el handler. defaultMethod se usa cuando el cliente no envía ?method=.
func NewInventoryHandler(
	query *inventory.QueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	report *inventory.ReportUseCase,
	products *usecase.ProductUseCase,
	defaultMethod kardex.Method,
) *InventoryHandler {
	if !defaultMethod.IsValid() {
		defaultMethod = kardex.DefaultMethod
	}
	return &InventoryHandler{
		query:         query,
		replenishment: replenishment,
		report:        report,
		products:      products,
		defaultMethod: defaultMethod,
	}
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos cuyo stock actual es menor o igual a su stock mínimo, en orden de catálogo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockProductDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.query.GetLowStockProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToLowStockResponse(list))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su stock mínimo con la cantidad sugerida de pedido,
//
//	ordenados por urgencia.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// Valuation godoc
// @Summary      Valuación de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        method     query  string  false  "FIFO | LIFO | WEIGHTED_AVERAGE (también peps, ueps, promedio)"
// @Param        start      query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        end        query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.ValuationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/valuation/{productId} [get]
func (h *InventoryHandler) Valuation(c *fiber.Ctx) error {
	productID := c.Params("productId")
	method, r, ok, err := h.valuationParams(c)
	if !ok {
		return err
	}
	if _, err := h.products.GetByID(c.UserContext(), productID); err != nil {
		return writeError(c, err)
	}
	b, err := h.query.CalculateInventoryCost(c.UserContext(), productID, method, r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToValuationResponse(productID, r, b))
}

// ValuationPDF godoc
// @Summary      Reporte PDF de valuación de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        productId  path   string  true   "ID del producto"
// @Param        method     query  string  false  "FIFO | LIFO | WEIGHTED_AVERAGE"
// @Param        start      query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        end        query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/valuation/{productId}/pdf [get]
func (h *InventoryHandler) ValuationPDF(c *fiber.Ctx) error {
	method, r, ok, err := h.valuationParams(c)
	if !ok {
		return err
	}
	pdf, filename, err := h.report.ValuationPDF(c.UserContext(), c.Params("productId"), method, r)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Summary godoc
// @Summary      Resumen valorizado del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        method  query  string  false  "FIFO | LIFO | WEIGHTED_AVERAGE"
// @Success      200  {object}  dto.InventorySummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	method, err := h.method(c)
	if err != nil {
		return badRequest(c, "INVALID_METHOD", "method debe ser FIFO, LIFO o WEIGHTED_AVERAGE")
	}
	lines, units, total, err := h.query.InventorySummary(c.UserContext(), method)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToSummaryResponse(method, lines, units, total))
}

func (h *InventoryHandler) method(c *fiber.Ctx) (kardex.Method, error) {
	raw := c.Query("method")
	if strings.TrimSpace(raw) == "" {
		return h.defaultMethod, nil
	}
	return kardex.ParseMethod(raw)
}

// valuationParams lee method, start y end. Si son inválidos responde 400 y devuelve ok=false.
func (h *InventoryHandler) valuationParams(c *fiber.Ctx) (kardex.Method, inventory.DateRange, bool, error) {
	method, err := h.method(c)
	if err != nil {
		return "", inventory.DateRange{}, false, badRequest(c, "INVALID_METHOD", "method debe ser FIFO, LIFO o WEIGHTED_AVERAGE")
	}
	r, err := inventory.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		return "", inventory.DateRange{}, false, badRequest(c, "VALIDATION", "start/end deben ser RFC3339 o YYYY-MM-DD")
	}
	return method, r, true, nil
}
