package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// QueryUseCase expone las consultas del kardex (stock, stock bajo, transacciones y valuación).
// Cada consulta toma un snapshot del almacén y delega el cálculo en el motor puro (domain/kardex);
// solo falla si el almacén falla, nunca por datos degenerados.
type QueryUseCase struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	metrics     MetricsRecorder
}

// NewQueryUseCase construye el caso de uso de consultas. metrics puede ser nil.
func NewQueryUseCase(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	metrics MetricsRecorder,
) *QueryUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &QueryUseCase{txRepo: txRepo, productRepo: productRepo, metrics: metrics}
}

// GetProductStock stock actual del producto (0 si no tiene movimientos).
func (uc *QueryUseCase) GetProductStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	txs, err := uc.txRepo.ListByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return kardex.CurrentStock(txs, productID), nil
}

// GetCategoryStock stock de cada producto de la categoría, en orden de catálogo.
func (uc *QueryUseCase) GetCategoryStock(ctx context.Context, categoryID string) ([]kardex.ProductStock, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return kardex.CategoryStock(categoryID, products, txs), nil
}

// GetLowStockProducts productos con stock <= stock mínimo.
func (uc *QueryUseCase) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return kardex.LowStockProducts(products, txs), nil
}

// GetProductTransactions transacciones del producto en el rango, ordenadas por fecha
// (empates en orden de inserción). Rango invertido = lista vacía.
func (uc *QueryUseCase) GetProductTransactions(ctx context.Context, productID string, r DateRange) ([]entity.Transaction, error) {
	txs, err := uc.txRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := kardex.FilterTransactions(txs, productID, r.Start, r.End)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// CalculateInventoryCost valora el producto en el rango con el método indicado.
func (uc *QueryUseCase) CalculateInventoryCost(ctx context.Context, productID string, method kardex.Method, r DateRange) (kardex.CostBreakdown, error) {
	txs, err := uc.txRepo.ListByProduct(ctx, productID)
	if err != nil {
		return kardex.CostBreakdown{}, err
	}
	uc.metrics.ValuationComputed(method.String())
	return kardex.CalculateInventoryCost(txs, productID, method, r.Start, r.End), nil
}

// SummaryLine valuación de un producto del catálogo.
type SummaryLine struct {
	Product   entity.Product
	Breakdown kardex.CostBreakdown
}

// InventorySummary valora todo el catálogo (sin límite de fechas) y devuelve las líneas en orden
// de catálogo junto con las unidades y el costo total.
func (uc *QueryUseCase) InventorySummary(ctx context.Context, method kardex.Method) ([]SummaryLine, decimal.Decimal, decimal.Decimal, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	txs, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	byProduct := make(map[string][]entity.Transaction, len(products))
	for _, t := range txs {
		byProduct[t.ProductID] = append(byProduct[t.ProductID], t)
	}

	lines := make([]SummaryLine, 0, len(products))
	units, total := decimal.Zero, decimal.Zero
	for _, p := range products {
		b := kardex.Valuate(byProduct[p.ID], method)
		units = units.Add(b.RemainingStock)
		total = total.Add(b.TotalCost)
		lines = append(lines, SummaryLine{Product: p, Breakdown: b})
	}
	uc.metrics.ValuationComputed(method.String())
	return lines, units, total, nil
}
