package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
)

// ToTransactionResponse mapea una transacción a su DTO de salida.
func ToTransactionResponse(t entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID,
		ProductID: t.ProductID,
		Type:      t.Type,
		Quantity:  t.Quantity,
		UnitCost:  t.UnitCost,
		Date:      t.Date,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
		CreatedBy: t.CreatedBy,
	}
}

// ToTransactionResponses mapea una lista (nunca nil).
func ToTransactionResponses(txs []entity.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// ToValuationResponse mapea el desglose del motor al DTO HTTP.
func ToValuationResponse(productID string, r DateRange, b kardex.CostBreakdown) dto.ValuationResponse {
	out := dto.ValuationResponse{
		ProductID:      productID,
		Method:         b.Method.String(),
		Entries:        ToTransactionResponses(b.Entries),
		Exits:          ToTransactionResponses(b.Exits),
		RemainingStock: b.RemainingStock,
		TotalCost:      b.TotalCost,
		AverageCost:    b.AverageCost,
		CostOfSales:    b.CostOfSales,
		Lots:           make([]dto.LotDTO, 0, len(b.Lots)),
		ExitCosts:      make([]dto.ExitCostDTO, 0, len(b.ExitCosts)),
	}
	if !r.Start.IsZero() {
		s := r.Start
		out.StartDate = &s
	}
	if !r.End.IsZero() {
		e := r.End
		out.EndDate = &e
	}
	for _, l := range b.Lots {
		out.Lots = append(out.Lots, dto.LotDTO{
			TransactionID: l.TransactionID,
			Date:          l.Date,
			Quantity:      l.Quantity,
			UnitCost:      l.UnitCost,
			Total:         l.Total(),
		})
	}
	for _, c := range b.ExitCosts {
		out.ExitCosts = append(out.ExitCosts, dto.ExitCostDTO{
			TransactionID: c.TransactionID,
			Date:          c.Date,
			Quantity:      c.Quantity,
			Consumed:      c.Consumed,
			Cost:          c.Cost,
		})
	}
	return out
}

// ToSummaryResponse mapea el resumen de inventario.
func ToSummaryResponse(method kardex.Method, lines []SummaryLine, units, total decimal.Decimal) dto.InventorySummaryResponse {
	items := make([]dto.SummaryLineDTO, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.SummaryLineDTO{
			ProductID:      l.Product.ID,
			SKU:            l.Product.SKU,
			ProductName:    l.Product.Name,
			RemainingStock: l.Breakdown.RemainingStock,
			TotalCost:      l.Breakdown.TotalCost,
			AverageCost:    l.Breakdown.AverageCost,
		})
	}
	return dto.InventorySummaryResponse{
		Method:     method.String(),
		Items:      items,
		TotalUnits: units,
		TotalCost:  total,
	}
}

// ToLowStockResponse mapea los productos con stock bajo.
func ToLowStockResponse(products []entity.Product) []dto.LowStockProductDTO {
	out := make([]dto.LowStockProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.LowStockProductDTO{
			ProductID:   p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			CategoryID:  p.CategoryID,
			MinStock:    p.MinStock,
			UnitMeasure: p.UnitMeasure,
		})
	}
	return out
}

// ToCategoryStockResponse mapea el stock por categoría y suma el total de unidades.
func ToCategoryStockResponse(categoryID string, stocks []kardex.ProductStock) dto.CategoryStockResponse {
	out := dto.CategoryStockResponse{
		CategoryID: categoryID,
		Items:      make([]dto.ProductStockResponse, 0, len(stocks)),
		Total:      decimal.Zero,
	}
	for _, s := range stocks {
		out.Items = append(out.Items, dto.ProductStockResponse{ProductID: s.ProductID, Stock: s.Stock})
		out.Total = out.Total.Add(s.Stock)
	}
	return out
}
