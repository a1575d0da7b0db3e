package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

type countingMetrics struct {
	registered map[string]int
	rejected   map[string]int
	valuations map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{registered: map[string]int{}, rejected: map[string]int{}, valuations: map[string]int{}}
}

func (m *countingMetrics) TransactionRegistered(t string) { m.registered[t]++ }
func (m *countingMetrics) TransactionRejected(r string)   { m.rejected[r]++ }
func (m *countingMetrics) ValuationComputed(method string) {
	m.valuations[method]++
}

type fixture struct {
	store    *memory.Store
	metrics  *countingMetrics
	register *inventory.RegisterTransactionUseCase
	query    *inventory.QueryUseCase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "cat-1", Name: "Herramientas"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-1", SKU: "MAR-01", Name: "Martillo", CategoryID: "cat-1", MinStock: decimal.NewFromInt(10)}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-2", SKU: "DES-01", Name: "Destornillador", CategoryID: "cat-1", MinStock: decimal.NewFromInt(2)}))
	m := newCountingMetrics()
	return fixture{
		store:    s,
		metrics:  m,
		register: inventory.NewRegisterTransactionUseCase(s, s.Products(), logger.Nop(), m),
		query:    inventory.NewQueryUseCase(s.Transactions(), s.Products(), m),
	}
}

func day(d int) *time.Time {
	t := time.Date(2024, 3, d, 9, 0, 0, 0, time.UTC)
	return &t
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func costPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// baseLedger: 10@5, 10@7 y una salida de 12.
func (f fixture) baseLedger(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.register.RegisterTransaction(ctx, inventory.TransactionInputDTO{ProductID: "p-1", Type: entity.TransactionTypeEntry, Quantity: dec(10), UnitCost: costPtr(5), Date: day(1)})
	require.NoError(t, err)
	_, err = f.register.RegisterTransaction(ctx, inventory.TransactionInputDTO{ProductID: "p-1", Type: entity.TransactionTypeEntry, Quantity: dec(10), UnitCost: costPtr(7), Date: day(2)})
	require.NoError(t, err)
	_, err = f.register.RegisterTransaction(ctx, inventory.TransactionInputDTO{ProductID: "p-1", Type: entity.TransactionTypeExit, Quantity: dec(12), Date: day(3)})
	require.NoError(t, err)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

// ─── Registro ────────────────────────────────────────────────────────────────

func TestRegisterTransaction_EntradaSinCosto(t *testing.T) {
	f := newFixture(t)
	_, err := f.register.RegisterTransaction(context.Background(), inventory.TransactionInputDTO{ProductID: "p-1", Type: entity.TransactionTypeEntry, Quantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterTransaction_CantidadNoPositiva(t *testing.T) {
	f := newFixture(t)
	_, err := f.register.RegisterTransaction(context.Background(), inventory.TransactionInputDTO{ProductID: "p-1", Type: entity.TransactionTypeExit, Quantity: dec(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterTransaction_TipoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.register.RegisterTransaction(context.Background(), inventory.TransactionInputDTO{ProductID: "p-1", Type: "adjust", Quantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterTransaction_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.register.RegisterTransaction(context.Background(), inventory.TransactionInputDTO{ProductID: "nope", Type: entity.TransactionTypeEntry, Quantity: dec(1), UnitCost: costPtr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterTransaction_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.baseLedger(t)
	ctx := context.Background()

	_, err := f.register.RegisterTransaction(ctx, inventory.TransactionInputDTO{ProductID: "p-1", Type: entity.TransactionTypeExit, Quantity: dec(9), Date: day(4)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, f.metrics.rejected["insufficient_stock"])

	n, err := f.store.Transactions().CountByProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "el ledger no cambia")
}

func TestRegisterTransaction_SalidaExacta(t *testing.T) {
	f := newFixture(t)
	f.baseLedger(t)
	ctx := context.Background()

	tx, err := f.register.RegisterTransaction(ctx, inventory.TransactionInputDTO{UserID: "u-1", ProductID: "p-1", Type: entity.TransactionTypeExit, Quantity: dec(8), UnitCost: costPtr(99)})
	require.NoError(t, err)
	assert.True(t, tx.UnitCost.IsZero(), "el costo de una salida se ignora")
	assert.Equal(t, "u-1", tx.CreatedBy)
	assert.Equal(t, 2, f.metrics.registered[entity.TransactionTypeExit])

	stock, err := f.query.GetProductStock(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, stock.IsZero())
}

func TestRegisterTransactionFromRequest_FechaInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.register.RegisterTransactionFromRequest(context.Background(), "u-1", dto.CreateTransactionRequest{
		ProductID: "p-1", Type: entity.TransactionTypeEntry, Quantity: dec(1), UnitCost: costPtr(1), Date: "03/01/2024",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterTransactionFromRequest_FechaSoloDia(t *testing.T) {
	f := newFixture(t)
	resp, err := f.register.RegisterTransactionFromRequest(context.Background(), "u-1", dto.CreateTransactionRequest{
		ProductID: "p-1", Type: entity.TransactionTypeEntry, Quantity: dec(1), UnitCost: costPtr(1), Date: "2024-03-01",
	})
	require.NoError(t, err)
	assert.True(t, resp.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

// ─── Consultas ───────────────────────────────────────────────────────────────

func TestCalculateInventoryCost_Metodos(t *testing.T) {
	f := newFixture(t)
	f.baseLedger(t)
	ctx := context.Background()

	cases := []struct {
		method                        kardex.Method
		total, average, costOfSales string
	}{
		{kardex.MethodFIFO, "56", "7", "64"},
		{kardex.MethodLIFO, "40", "5", "80"},
		{kardex.MethodWeightedAverage, "48", "6", "72"},
	}
	for _, tc := range cases {
		t.Run(tc.method.String(), func(t *testing.T) {
			b, err := f.query.CalculateInventoryCost(ctx, "p-1", tc.method, inventory.DateRange{})
			require.NoError(t, err)
			assertDecimal(t, "8", b.RemainingStock)
			assertDecimal(t, tc.total, b.TotalCost)
			assertDecimal(t, tc.average, b.AverageCost)
			assertDecimal(t, tc.costOfSales, b.CostOfSales)
		})
	}
	assert.Equal(t, 1, f.metrics.valuations["FIFO"])
}

func TestCalculateInventoryCost_Rango(t *testing.T) {
	f := newFixture(t)
	f.baseLedger(t)

	r, err := inventory.ParseDateRange("2024-03-01", "2024-03-01")
	require.NoError(t, err)
	b, err := f.query.CalculateInventoryCost(context.Background(), "p-1", kardex.MethodFIFO, r)
	require.NoError(t, err)
	assertDecimal(t, "10", b.RemainingStock)
	assertDecimal(t, "50", b.TotalCost)
}

func TestGetProductTransactions_OrdenPorFecha(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.register.RegisterTransaction(ctx, inventory.TransactionInputDTO{ProductID: "p-1", Type: entity.TransactionTypeEntry, Quantity: dec(1), UnitCost: costPtr(1), Date: day(5)})
	require.NoError(t, err)
	_, err = f.register.RegisterTransaction(ctx, inventory.TransactionInputDTO{ProductID: "p-1", Type: entity.TransactionTypeEntry, Quantity: dec(2), UnitCost: costPtr(1), Date: day(2)})
	require.NoError(t, err)

	list, err := f.query.GetProductTransactions(ctx, "p-1", inventory.DateRange{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Date.Equal(*day(2)))

	inverted, err := f.query.GetProductTransactions(ctx, "p-1", inventory.DateRange{Start: *day(9), End: *day(1)})
	require.NoError(t, err)
	assert.NotNil(t, inverted)
	assert.Empty(t, inverted)
}

func TestGetLowStockYCategoria(t *testing.T) {
	f := newFixture(t)
	f.baseLedger(t)
	ctx := context.Background()

	low, err := f.query.GetLowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2, "p-1 con 8 <= 10 y p-2 con 0 <= 2")
	assert.Equal(t, "p-1", low[0].ID)

	stocks, err := f.query.GetCategoryStock(ctx, "cat-1")
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	assertDecimal(t, "8", stocks[0].Stock)
	assertDecimal(t, "0", stocks[1].Stock)
}

func TestInventorySummary(t *testing.T) {
	f := newFixture(t)
	f.baseLedger(t)
	_, err := f.register.RegisterTransaction(context.Background(), inventory.TransactionInputDTO{ProductID: "p-2", Type: entity.TransactionTypeEntry, Quantity: dec(4), UnitCost: costPtr(3), Date: day(1)})
	require.NoError(t, err)

	lines, units, total, err := f.query.InventorySummary(context.Background(), kardex.MethodFIFO)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assertDecimal(t, "12", units)
	assertDecimal(t, "68", total)

	resp := inventory.ToSummaryResponse(kardex.MethodFIFO, lines, units, total)
	assert.Equal(t, "FIFO", resp.Method)
	assert.Len(t, resp.Items, 2)
}

// ─── Reposición ──────────────────────────────────────────────────────────────

func TestGenerateReplenishmentList(t *testing.T) {
	f := newFixture(t)
	f.baseLedger(t)
	uc := inventory.NewReplenishmentUseCase(f.store.Transactions(), f.store.Products())

	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	// p-1: déficit 2, p-2: déficit 2; empate conserva orden de catálogo.
	first := list[0]
	assert.Equal(t, "p-1", first.ProductID)
	assert.Equal(t, 1, first.Priority)
	assertDecimal(t, "15", first.IdealStock)
	assertDecimal(t, "7", first.SuggestedOrderQty)
	assertDecimal(t, "6", first.UnitCost)
	assertDecimal(t, "42", first.EstimatedOrderCost)

	second := list[1]
	assertDecimal(t, "3", second.SuggestedOrderQty)
	assertDecimal(t, "0", second.EstimatedOrderCost)
}

// ─── Reporte PDF ─────────────────────────────────────────────────────────────

type fakePDF struct {
	got inventory.ValuationReport
}

func (g *fakePDF) GenerateValuationPDF(_ context.Context, r inventory.ValuationReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}

func TestValuationPDF(t *testing.T) {
	f := newFixture(t)
	f.baseLedger(t)
	gen := &fakePDF{}
	uc := inventory.NewReportUseCase(f.query, f.store.Products(), f.store.Categories(), gen)

	pdf, name, err := uc.ValuationPDF(context.Background(), "p-1", kardex.MethodLIFO, inventory.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "valuacion-MAR-01-lifo.pdf", name)
	assert.Equal(t, "Herramientas", gen.got.Category)
	assertDecimal(t, "40", gen.got.Breakdown.TotalCost)

	_, _, err = uc.ValuationPDF(context.Background(), "nope", kardex.MethodLIFO, inventory.DateRange{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Fechas ──────────────────────────────────────────────────────────────────

func TestParseDateRange(t *testing.T) {
	r, err := inventory.ParseDateRange("2024-03-01", "2024-03-02")
	require.NoError(t, err)
	assert.True(t, r.Start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.End.Equal(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)))

	open, err := inventory.ParseDateRange("", "")
	require.NoError(t, err)
	assert.True(t, open.Start.IsZero() && open.End.IsZero())

	_, err = inventory.ParseDateRange("ayer", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
